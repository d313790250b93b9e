package codec

type CodecType byte

const (
	CodecTypeText CodecType = 0
	CodecTypeJSON CodecType = 1
)

// Codec turns a response body into the display-ready payload string.
type Codec interface {
	Decode(body []byte) (string, error)
	Type() CodecType // 0=Text, 1=JSON
}

// GetCodec returns the codec for t. The choice is made by the caller, never
// by the response Content-Type; the zero value passes bodies through
// untouched.
func GetCodec(t CodecType) Codec {
	switch t {
	case CodecTypeJSON:
		return &JSONCodec{}
	default:
		return &TextCodec{}
	}
}
