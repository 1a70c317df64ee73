package output

// AddressGenerator issues disposable signup addresses.
type AddressGenerator interface {
	Generate() string
	// Domain is the domain every generated address lives under.
	Domain() string
}
