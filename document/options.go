package document

// Option configures a Document.
type Option func(*documentConfig)

type documentConfig struct {
	defaults Attrs
}

func defaultDocumentConfig() documentConfig {
	return documentConfig{}
}

// WithDefaults overrides the default style. The given values become both
// the initial style of the text and the value a nil attribute resets to.
//
// Example:
//
//	doc := document.New("hello", document.WithDefaults(document.Attrs{
//		document.AttrFontName: "Go Mono",
//		document.AttrFontSize: 14.0,
//	}))
func WithDefaults(attrs Attrs) Option {
	return func(c *documentConfig) {
		if c.defaults == nil {
			c.defaults = make(Attrs, len(attrs))
		}
		for k, v := range attrs {
			c.defaults[k] = v
		}
	}
}
