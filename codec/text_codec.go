package codec

// TextCodec returns the body byte for byte. The message log is shown exactly
// as the store sent it, trailing newlines included.
type TextCodec struct{}

func (c *TextCodec) Decode(body []byte) (string, error) {
	return string(body), nil
}

func (c *TextCodec) Type() CodecType {
	return CodecTypeText
}
