package canvas

// Option configures a Canvas at creation time.
type Option func(*options)

type options struct {
	gamma Gamma
}

func defaultOptions() options {
	return options{gamma: GammaSRGB}
}

// WithGamma selects the transfer curve used when converting storage
// pixels to and from the linear blending space. The default is
// GammaSRGB.
//
// Example:
//
//	ctx := canvas.New(pixmap, canvas.WithGamma(canvas.GammaNone))
func WithGamma(g Gamma) Option {
	return func(o *options) {
		o.gamma = g
	}
}
