package lison

// ParseFailure is the error returned by Parse.
// It only tells which kind of construct is invalid: it carries
// no location, and there is no distinction between a missing,
// mistyped, out of range or unexpected member.
type ParseFailure uint8

const (
	BadJSON  ParseFailure = iota + 1 // the input is not valid JSON
	BadImage                         // invalid top-level structure
	BadPen                           // invalid pen
	BadBrush                         // invalid brush
	BadShape                         // invalid shape, path, segment or invalid pen/brush reference
)

func (f ParseFailure) Error() string {
	switch f {
	case BadJSON:
		return "lison: bad json"
	case BadImage:
		return "lison: bad image"
	case BadPen:
		return "lison: bad pen"
	case BadBrush:
		return "lison: bad brush"
	case BadShape:
		return "lison: bad shape"
	default:
		return "lison: <unknown failure>"
	}
}
