package param

// Builder assembles a Parameter. The default is given as a plain value and
// normalized in Build, so the setters may be called in any order.
type Builder struct {
	p       *Parameter
	dflt    float64
	hasDflt bool
}

// New starts an automatable parameter with a 0-1 range.
func New(id uint32, name string) *Builder {
	return &Builder{p: &Parameter{
		ID:        id,
		Name:      name,
		ShortName: name,
		Max:       1,
		Flags:     CanAutomate,
	}}
}

// ShortName sets the abbreviated name hosts show in narrow columns.
func (b *Builder) ShortName(name string) *Builder {
	b.p.ShortName = name
	return b
}

// Range sets the plain bounds.
func (b *Builder) Range(lo, hi float64) *Builder {
	b.p.Min, b.p.Max = lo, hi
	return b
}

// Default sets the plain default value.
func (b *Builder) Default(plain float64) *Builder {
	b.dflt, b.hasDflt = plain, true
	return b
}

// Logarithmic maps normalized values exponentially onto the range.
func (b *Builder) Logarithmic() *Builder {
	b.p.Scale = ScaleLog
	return b
}

// Unit sets the unit label.
func (b *Builder) Unit(unit string) *Builder {
	b.p.Unit = unit
	return b
}

// Display sets how values are shown and parsed.
func (b *Builder) Display(d Display) *Builder {
	b.p.formatFunc, b.p.parseFunc = d.Format, d.Parse
	return b
}

// Build returns the parameter set to its default.
func (b *Builder) Build() *Parameter {
	p := b.p
	if b.hasDflt {
		p.DefaultValue = p.Normalize(b.dflt)
	}
	p.SetValue(p.DefaultValue)
	return p
}
