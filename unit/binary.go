package unit

// InstallBinary registers the byte and the IEC binary scalings of bits and
// bytes (KiBit, MiByte, ...). The scalings count as prefixed units of Bit or
// Byte so autoscaling can move between them.
func InstallBinary(r *Registry) error {
	bit, err := r.Get("Bit")
	if err != nil {
		return err
	}
	b, err := r.DefineComposite("Byte", 8, "Bit",
		WithVerboseName("Byte"),
		WithPrefixed(bit),
		WithURL("https://en.wikipedia.org/wiki/Byte"))
	if err != nil {
		return err
	}

	scales := []struct {
		prefix string
		scale  float64
	}{
		{"Ki", 1 << 10},
		{"Mi", 1 << 20},
		{"Gi", 1 << 30},
		{"Ti", 1 << 40},
		{"Pi", 1 << 50},
		{"Ei", 1 << 60},
		{"Zi", 1 << 70},
		{"Yi", 1 << 80},
	}
	for _, s := range scales {
		name := s.prefix + "Bit"
		if _, err := r.DefineComposite(name, s.scale, "Bit",
			WithVerboseName(name),
			WithPrefixed(bit),
			WithURL("https://en.wikipedia.org/wiki/Bit")); err != nil {
			return err
		}
		name = s.prefix + "Byte"
		if _, err := r.DefineComposite(name, s.scale, "Byte",
			WithVerboseName(name),
			WithPrefixed(b),
			WithURL("https://en.wikipedia.org/wiki/Byte")); err != nil {
			return err
		}
	}
	return nil
}
