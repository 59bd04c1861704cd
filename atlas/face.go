package atlas

// FaceSelector picks the font descriptor used to render a block, given the
// descriptor the cache was created with.
type FaceSelector func(id BlockID, desc FontDescriptor) FontDescriptor

// ConfiguredFace renders every block with the configured descriptor.
func ConfiguredFace(_ BlockID, desc FontDescriptor) FontDescriptor {
	return desc
}

// LegacyFallbackFace renders block 0 with the configured descriptor and every
// other block with family, keeping style, size, antialiasing and spacing.
// This matches renderers that switch to a broad coverage system font
// outside Basic Latin.
func LegacyFallbackFace(family string) FaceSelector {
	return func(id BlockID, desc FontDescriptor) FontDescriptor {
		if id == 0 {
			return desc
		}
		return desc.WithFamily(family)
	}
}
