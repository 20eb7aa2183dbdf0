package suspension

import (
	"fmt"

	"github.com/akmonengine/strut/geometry"
	"github.com/akmonengine/strut/interp"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Wheel config keys. Angles are in degrees, distances in meters.
//
//	spring-constant  required, N/m
//	bounce           required, compression damping, N·s/m
//	rebound          required, extension damping, N·s/m
//	travel           required, m
//	position         required, [x, y, z] wheel hub at full extension
//	anti-roll        optional, N/m, default 0
//	spring-factors   optional, [[fraction, factor], ...], default flat 1.0
//	damper-factors   optional, [[fraction, factor], ...], default flat 1.0
//	steering-angle   optional, degrees, default 0
//	ackermann        optional, degrees, default 0
//	camber           optional, degrees, default 0
//	caster           optional, degrees, default 0
//	toe              optional, degrees, default 0
//	hinge            optional, [x, y, z] pivot; selects the arc geometry
const (
	keySpringConstant = "spring-constant"
	keyAntiRoll       = "anti-roll"
	keyBounce         = "bounce"
	keyRebound        = "rebound"
	keyTravel         = "travel"
	keySpringFactors  = "spring-factors"
	keyDamperFactors  = "damper-factors"
	keyPosition       = "position"
	keySteeringAngle  = "steering-angle"
	keyAckermann      = "ackermann"
	keyCamber         = "camber"
	keyCaster         = "caster"
	keyToe            = "toe"
	keyHinge          = "hinge"
)

// Load builds a fully initialized suspension from one wheel's configuration
// subtree, or fails with a diagnostic on the given logger. On failure no
// partially constructed suspension is returned; the caller is expected to
// abort the vehicle load.
func Load(cfg *viper.Viper, wheelMass float64, log zerolog.Logger) (*Suspension, error) {
	s, err := load(cfg, wheelMass)
	if err != nil {
		log.Error().Err(err).Msg("suspension load failed")
		return nil, err
	}

	log.Debug().
		Float64("travel", s.info.Travel).
		Float64("spring-constant", s.info.SpringConstant).
		Float64("steering-angle", s.info.SteeringAngle).
		Msg("suspension loaded")

	return s, nil
}

func load(cfg *viper.Viper, wheelMass float64) (*Suspension, error) {
	if cfg == nil {
		return nil, fmt.Errorf("suspension: missing wheel configuration")
	}
	if !(wheelMass > 0) {
		return nil, fmt.Errorf("suspension: wheel mass must be positive, got %v", wheelMass)
	}
	for _, key := range []string{keySpringConstant, keyBounce, keyRebound, keyTravel, keyPosition} {
		if !cfg.IsSet(key) {
			return nil, fmt.Errorf("suspension: missing required key %q", key)
		}
	}

	position, err := vec3(cfg, keyPosition)
	if err != nil {
		return nil, err
	}
	springFactors, err := curve(cfg, keySpringFactors)
	if err != nil {
		return nil, err
	}
	damperFactors, err := curve(cfg, keyDamperFactors)
	if err != nil {
		return nil, err
	}

	info := Info{
		SpringConstant: cfg.GetFloat64(keySpringConstant),
		AntiRoll:       cfg.GetFloat64(keyAntiRoll),
		Bounce:         cfg.GetFloat64(keyBounce),
		Rebound:        cfg.GetFloat64(keyRebound),
		Travel:         cfg.GetFloat64(keyTravel),
		SpringFactors:  springFactors,
		DamperFactors:  damperFactors,
		Position:       position,
		SteeringAngle:  cfg.GetFloat64(keySteeringAngle),
		Ackermann:      cfg.GetFloat64(keyAckermann),
		Camber:         cfg.GetFloat64(keyCamber),
		Caster:         cfg.GetFloat64(keyCaster),
		Toe:            cfg.GetFloat64(keyToe),
		InvMass:        1 / wheelMass,
	}

	var geom geometry.Geometry = geometry.Linear{Extended: info.Position}
	if cfg.IsSet(keyHinge) {
		pivot, err := vec3(cfg, keyHinge)
		if err != nil {
			return nil, err
		}
		hinge, err := geometry.NewHinge(pivot, info.Position)
		if err != nil {
			return nil, err
		}
		geom = hinge
	}

	return New(info, geom)
}

func vec3(cfg *viper.Viper, key string) (mgl64.Vec3, error) {
	values, err := cast.ToFloat64SliceE(cfg.Get(key))
	if err != nil {
		return mgl64.Vec3{}, fmt.Errorf("suspension: %s: %w", key, err)
	}
	if len(values) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("suspension: %s: want 3 components, got %d", key, len(values))
	}
	return mgl64.Vec3{values[0], values[1], values[2]}, nil
}

func curve(cfg *viper.Viper, key string) (interp.LinearInterp, error) {
	if !cfg.IsSet(key) {
		return interp.Flat(1), nil
	}

	entries, err := cast.ToSliceE(cfg.Get(key))
	if err != nil {
		return interp.LinearInterp{}, fmt.Errorf("suspension: %s: %w", key, err)
	}

	points := make([]interp.Point, 0, len(entries))
	for i, entry := range entries {
		pair, err := cast.ToFloat64SliceE(entry)
		if err != nil {
			return interp.LinearInterp{}, fmt.Errorf("suspension: %s[%d]: %w", key, i, err)
		}
		if len(pair) != 2 {
			return interp.LinearInterp{}, fmt.Errorf("suspension: %s[%d]: want [x, y], got %d values", key, i, len(pair))
		}
		points = append(points, interp.Point{X: pair[0], Y: pair[1]})
	}

	li, err := interp.New(points)
	if err != nil {
		return interp.LinearInterp{}, fmt.Errorf("suspension: %s: %w", key, err)
	}
	return li, nil
}
