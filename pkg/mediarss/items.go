package mediarss

// Thumbnail is a media:thumbnail.
type Thumbnail struct {
	URL    string
	Width  int64
	Height int64
	Time   string
}

// Content is a media:content.
type Content struct {
	URL      string
	Type     string
	Medium   string
	FileSize int64
	Duration int64
}

// Credit is a media:credit.
type Credit struct {
	Role   string
	Scheme string
	Name   string
}

// Category is a media:category.
type Category struct {
	Scheme string
	Label  string
	Value  string
}

// Thumbnails returns the media:thumbnail children in document order.
// Malformed sizes read as zero.
func (g *Group) Thumbnails() []Thumbnail {
	var out []Thumbnail
	for _, s := range g.simples(ThumbnailName) {
		out = append(out, Thumbnail{
			URL:    attr(s, "url"),
			Width:  attrInt(s, "width"),
			Height: attrInt(s, "height"),
			Time:   attr(s, "time"),
		})
	}
	return out
}

// AddThumbnail appends a media:thumbnail.
func (g *Group) AddThumbnail(t Thumbnail) {
	s := newElement(ThumbnailName)
	s.SetAttribute("", "url", t.URL)
	setAttrInt(s, "width", t.Width)
	setAttrInt(s, "height", t.Height)
	setAttr(s, "time", t.Time)
	g.AddExtension(s)
}

// Contents returns the media:content children in document order.
func (g *Group) Contents() []Content {
	var out []Content
	for _, s := range g.simples(ContentName) {
		out = append(out, Content{
			URL:      attr(s, "url"),
			Type:     attr(s, "type"),
			Medium:   attr(s, "medium"),
			FileSize: attrInt(s, "fileSize"),
			Duration: attrInt(s, "duration"),
		})
	}
	return out
}

// AddContent appends a media:content.
func (g *Group) AddContent(c Content) {
	s := newElement(ContentName)
	s.SetAttribute("", "url", c.URL)
	setAttr(s, "type", c.Type)
	setAttr(s, "medium", c.Medium)
	setAttrInt(s, "fileSize", c.FileSize)
	setAttrInt(s, "duration", c.Duration)
	g.AddExtension(s)
}

// Credits returns the media:credit children in document order.
func (g *Group) Credits() []Credit {
	var out []Credit
	for _, s := range g.simples(CreditName) {
		out = append(out, Credit{
			Role:   attr(s, "role"),
			Scheme: attr(s, "scheme"),
			Name:   s.Value(),
		})
	}
	return out
}

// AddCredit appends a media:credit.
func (g *Group) AddCredit(c Credit) {
	s := newElement(CreditName)
	setAttr(s, "role", c.Role)
	setAttr(s, "scheme", c.Scheme)
	s.SetValue(c.Name)
	g.AddExtension(s)
}

// Categories returns the media:category children in document order.
func (g *Group) Categories() []Category {
	var out []Category
	for _, s := range g.simples(CategoryName) {
		out = append(out, Category{
			Scheme: attr(s, "scheme"),
			Label:  attr(s, "label"),
			Value:  s.Value(),
		})
	}
	return out
}

// AddCategory appends a media:category.
func (g *Group) AddCategory(c Category) {
	s := newElement(CategoryName)
	setAttr(s, "scheme", c.Scheme)
	setAttr(s, "label", c.Label)
	s.SetValue(c.Value)
	g.AddExtension(s)
}
