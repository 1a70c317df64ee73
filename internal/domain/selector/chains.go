package selector

// Forms that look like a newsletter signup, most specific first.
var Forms = Chain{
	CSS(`form[action*="subscribe"]`),
	CSS(`form[action*="newsletter"]`),
	CSS(`form[action*="signup"]`),
	CSS(`form[action*="join"]`),
	CSS(`form[action*="register"]`),
	CSS(`form[class*="newsletter"]`),
	CSS(`form[class*="subscribe"]`),
	CSS(`form[id*="newsletter"]`),
	CSS(`form[id*="subscribe"]`),
}

// AnyEmailForm is tried once Forms is exhausted.
var AnyEmailForm = CSS(`form:has(input[type="email"])`)

var EmailInputs = Chain{
	CSS(`input[type="email"]`),
	CSS(`input[name*="email"]`),
	CSS(`input[id*="email"]`),
	CSS(`input[placeholder*="email" i]`),
	CSS(`input[placeholder*="newsletter" i]`),
	CSS(`input[placeholder*="subscribe" i]`),
}

var SubmitButtons = Chain{
	CSS(`button[type="submit"]`),
	CSS(`input[type="submit"]`),
	WithText("button", "Subscribe"),
	WithText("button", "Sign Up"),
	WithText("button", "Join"),
	WithText("button", "Register"),
	CSS(`button[class*="submit"]`),
	CSS(`button[id*="submit"]`),
}

// AnyButton is the last resort inside an already located form.
var AnyButton = CSS("button")

var SuccessMarkers = Chain{
	CSS(`[class*="success"]`),
	CSS(`[class*="thank"]`),
}

var ConfirmationPhrases = []string{
	"Thank you",
	"Success",
	"Subscribed",
	"Welcome",
	"Confirmed",
}
