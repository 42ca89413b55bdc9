package menu

// View is the menu resolved for one request. It is what renderers consume
// when they cannot hold on to the live tree, e.g. across a process boundary.
type View struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Version     string     `json:"version,omitempty"`
	Items       []ItemView `json:"items,omitempty"`
}

// ItemView is a menu item resolved for one request.
type ItemView struct {
	Label     string      `json:"label,omitempty"`
	URL       string      `json:"url,omitempty"`
	Link      string      `json:"link,omitempty"`
	Active    bool        `json:"active"`
	Extended  bool        `json:"extended,omitempty"`
	Hidden    bool        `json:"hidden,omitempty"`
	Separator bool        `json:"separator,omitempty"`
	CSSClass  string      `json:"cssClass,omitempty"`
	Priority  *float64    `json:"priority,omitempty"`
	Styles    []StyleView `json:"styles,omitempty"`
	Children  []ItemView  `json:"children,omitempty"`
}

// StyleView is a style attached to an ItemView.
type StyleView struct {
	Kind StyleKind `json:"kind"`
	Data any       `json:"data"`
}

// ViewOption configures Resolve.
type ViewOption func(*viewConfig)

type viewConfig struct {
	includeHidden bool
}

// WithHidden keeps hidden items in the view, flagged as hidden. By default
// hidden items are dropped along with their children.
func WithHidden() ViewOption {
	return func(c *viewConfig) { c.includeHidden = true }
}

// Resolve walks the menu and resolves every item for req.
func Resolve(m *Menu, req Request, opts ...ViewOption) View {
	cfg := viewConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	v := View{
		Title:       m.Title,
		Description: m.Description,
		Version:     m.Version,
	}

	if m.IsHidden() && !cfg.includeHidden {
		return v
	}

	v.Items = resolveItems(m.Children(), req, cfg)
	return v
}

func resolveItems(items []*Item, req Request, cfg viewConfig) []ItemView {
	var out []ItemView
	for _, it := range items {
		hidden := it.IsHidden()
		if hidden && !cfg.includeHidden {
			continue
		}
		out = append(out, resolveItem(it, hidden, req, cfg))
	}
	return out
}

func resolveItem(it *Item, hidden bool, req Request, cfg viewConfig) ItemView {
	if it.IsSeparator() {
		return ItemView{Separator: true, Hidden: hidden}
	}

	iv := ItemView{
		Label:    it.Label(),
		URL:      it.URL(),
		Link:     it.Link(req),
		Active:   it.IsActive(req),
		Extended: it.IsExtended(),
		Hidden:   hidden,
		CSSClass: it.CSSClass(),
		Children: resolveItems(it.Children(), req, cfg),
	}

	if p, ok := it.Priority(); ok {
		iv.Priority = &p
	}

	for _, s := range it.Styles() {
		iv.Styles = append(iv.Styles, styleView(it, s))
	}

	return iv
}

func styleView(it *Item, s Style) StyleView {
	if icon, ok := s.(IconStyle); ok {
		return StyleView{Kind: KindIcon, Data: IconStyle{URL: icon.ResolvedURL(it.RootURL())}}
	}
	return StyleView{Kind: s.Kind(), Data: s}
}
