package parameter

// Background star field, world units (projected onto the viewport by StarReferenceWidth)
const (
	// StarCount is the fixed pool size
	StarCount = 150

	// StarSpread is the lateral spawn range, offsets are drawn from [-Spread/2, Spread/2)
	StarSpread = 2000.0

	// StarZMax is the maximum depth and the recycle depth
	StarZMax = 2000.0

	// StarFocalLength is the perspective focal length
	StarFocalLength = 400.0

	// StarBaseSpeed is the z decrement per ReferenceFrame at multiplier 1
	StarBaseSpeed = 1.0

	// StarSizeMin/Max bound the base size at spawn
	StarSizeMin = 0.5
	StarSizeMax = 2.5

	// StarOpacityMin/Max bound the base opacity at spawn
	StarOpacityMin = 0.2
	StarOpacityMax = 0.7

	// StarStretchFactor multiplies rendered size during the transition scene
	StarStretchFactor = 3.0

	// StarStreakRatio is the streak length relative to its width
	StarStreakRatio = 5.0

	// StarReferenceWidth is the world width mapped onto the full viewport width
	StarReferenceWidth = 1600.0
)
