package logx

// NopSensitiveDataMasker leaves dumps untouched. Used when no masker is
// configured on a round tripper.
type NopSensitiveDataMasker struct{}

func NewNopSensitiveDataMasker() NopSensitiveDataMasker {
	return NopSensitiveDataMasker{}
}

func (NopSensitiveDataMasker) Mask(input []byte) []byte {
	return input
}
