package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/akmonengine/strut"
	"github.com/akmonengine/strut/suspension"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Front axle of an S2000-like car, progressive spring above 60% compression
const wheelConfig = `{
	"spring-constant": 40000,
	"anti-roll": 5000,
	"bounce": 2500,
	"rebound": 4000,
	"travel": 0.2,
	"position": [-0.75, 1.45, -0.2],
	"steering-angle": 30,
	"ackermann": 8.5,
	"camber": -0.5,
	"caster": 6.0,
	"toe": 0.25,
	"spring-factors": [[0.0, 1.0], [0.6, 1.0], [1.0, 1.6]],
	"damper-factors": [[0.0, 1.0], [1.0, 1.2]]
}`

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg := viper.New()
	cfg.SetConfigType("json")
	if err := cfg.ReadConfig(strings.NewReader(wheelConfig)); err != nil {
		log.Fatal().Err(err).Msg("reading wheel config")
	}

	left, err := suspension.Load(cfg, 20, log)
	if err != nil {
		os.Exit(1)
	}
	right, err := suspension.Load(cfg, 20, log)
	if err != nil {
		os.Exit(1)
	}

	vehicle := strut.NewVehicle(&strut.Axle{Left: left, Right: right})
	vehicle.Events.Subscribe(strut.BOTTOM_OUT, func(event strut.Event) {
		e := event.(strut.BottomOutEvent)
		fmt.Printf("⚠️  bottom out, overtravel %.4f m\n", e.Overtravel)
	})
	vehicle.Events.Subscribe(strut.AIRBORNE, func(event strut.Event) {
		fmt.Println("✈️  wheel airborne")
	})

	// Settle at static ride height: the displacement where the suspension
	// carries a quarter of the sprung weight
	const cornerWeight = 350 * 9.81
	rest := left.SolveDisplacement(cornerWeight)
	left.SetDisplacement(rest)
	right.SetDisplacement(rest)
	fmt.Printf("static ride height: displacement %.4f m (%.1f%% of travel)\n",
		rest, 100*left.DisplacementFraction())

	left.SetSteering(0.5)
	right.SetSteering(0.5)

	// Roll the left wheel over a sharp bump, then drop it off a ledge
	dt := 1.0 / 240
	for i := 0; i < 480; i++ {
		var deltas strut.AxleDeltas
		switch {
		case i >= 60 && i < 120:
			deltas.Left = 0.004 // climbing the bump
		case i >= 120 && i < 180:
			deltas.Left = -0.004 // rolling off
		case i >= 300:
			deltas.Left = -0.01 // ledge, contact lost
		}
		vehicle.Step([]strut.AxleDeltas{deltas}, dt)

		if i%60 == 0 {
			fmt.Printf("t=%5.2fs left: disp %.4f force %8.1f wheel %8.1f | right: disp %.4f force %8.1f\n",
				float64(i)*dt,
				left.Displacement(), left.Force(), left.WheelForce(),
				right.Displacement(), right.Force())
		}
	}

	left.DebugPrint(os.Stdout)

	snap := left.Snapshot()
	if err := snap.Encode(os.Stdout); err != nil {
		log.Error().Err(err).Msg("encoding snapshot")
	}
}
