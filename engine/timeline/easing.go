package timeline

import (
	"github.com/Carmen-Shannon/oxy-bas/common"
	"github.com/tanema/gween/ease"
)

// easings maps GLSL easing function names to their CPU counterparts.
var easings = map[string]ease.TweenFunc{
	"easeQuadIn":       ease.InQuad,
	"easeQuadOut":      ease.OutQuad,
	"easeQuadInOut":    ease.InOutQuad,
	"easeCubicIn":      ease.InCubic,
	"easeCubicOut":     ease.OutCubic,
	"easeCubicInOut":   ease.InOutCubic,
	"easeQuartIn":      ease.InQuart,
	"easeQuartOut":     ease.OutQuart,
	"easeQuartInOut":   ease.InOutQuart,
	"easeQuintIn":      ease.InQuint,
	"easeQuintOut":     ease.OutQuint,
	"easeQuintInOut":   ease.InOutQuint,
	"easeSineIn":       ease.InSine,
	"easeSineOut":      ease.OutSine,
	"easeSineInOut":    ease.InOutSine,
	"easeExpoIn":       ease.InExpo,
	"easeExpoOut":      ease.OutExpo,
	"easeExpoInOut":    ease.InOutExpo,
	"easeCircIn":       ease.InCirc,
	"easeCircOut":      ease.OutCirc,
	"easeCircInOut":    ease.InOutCirc,
	"easeElasticIn":    ease.InElastic,
	"easeElasticOut":   ease.OutElastic,
	"easeElasticInOut": ease.InOutElastic,
	"easeBackIn":       ease.InBack,
	"easeBackOut":      ease.OutBack,
	"easeBackInOut":    ease.InOutBack,
	"easeBounceIn":     ease.InBounce,
	"easeBounceOut":    ease.OutBounce,
	"easeBounceInOut":  ease.InOutBounce,
}

// HasEasing reports whether the named easing can be evaluated on the CPU.
func HasEasing(name string) bool {
	_, ok := easings[name]
	return ok
}

// applyEasing remaps linear progress with the named easing. Ease parameters are not
// forwarded; names without a CPU counterpart fall back to linear with a warning.
func applyEasing(name string, progress float64) float64 {
	if name == "" {
		return progress
	}
	fn, ok := easings[name]
	if !ok {
		common.Logger().Warn("no CPU easing for name, sampling linearly", "ease", name)
		return progress
	}
	return float64(fn(float32(progress), 0, 1, 1))
}
