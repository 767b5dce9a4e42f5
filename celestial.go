package twobody

import (
	"fmt"
	"math"
)

// CelestialObject holds the constants the intercept tools need about a body.
type CelestialObject struct {
	Name   string
	Radius float64 // km
	μ      float64 // km³/s²
	SOI    float64 // km, -1 for the Sun
}

// GM returns μ (which is unexported because it's a lowercase letter...)
func (c CelestialObject) GM() float64 {
	return c.μ
}

func (c CelestialObject) String() string {
	return c.Name + " body"
}

// SOIFromOrbitalRadius returns the sphere of influence of a body of gravity
// parameter μ orbiting a primary of gravity parameter μPrimary at radius r.
func SOIFromOrbitalRadius(μPrimary, μ, r float64) float64 {
	return r * math.Pow(μ/μPrimary, 2.0/5.0)
}

// Sun is our closest star.
var Sun = CelestialObject{"Sun", 696000, 1.32712440018e11, -1}

// Earth is home.
var Earth = CelestialObject{"Earth", 6378.1363, 3.986004415e5, 924645.0}

// Moon is Earth's satellite.
var Moon = CelestialObject{"Moon", 1738.1, 4902.8, 66183.0}

// Mars is the vacation place.
var Mars = CelestialObject{"Mars", 3396.19, 4.2828372e4, 577231.0}

// CelestialObjectFromString returns the object from its name.
func CelestialObjectFromString(name string) (CelestialObject, error) {
	switch name {
	case "Sun":
		return Sun, nil
	case "Earth":
		return Earth, nil
	case "Moon":
		return Moon, nil
	case "Mars":
		return Mars, nil
	}
	return CelestialObject{}, fmt.Errorf("undefined body '%s'", name)
}
