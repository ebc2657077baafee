package i18n

// CachedFiles reports how many catalog files are held in memory.
func (c *Catalog) CachedFiles() int { return c.files.Len() }

// CachedFormatters reports how many locale formatters have been built.
func (c *Catalog) CachedFormatters() int { return c.formatters.Len() }
