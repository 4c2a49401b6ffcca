// Package estimator derives a fabric-length recommendation from body metrics.
// The result is advisory only and is never persisted against an order.
package estimator

import (
	"fmt"
	"strconv"
)

// GarmentType enumerates the garments the estimator knows cutting rules for.
type GarmentType string

const (
	GarmentShirt GarmentType = "Shirt"
	GarmentPant  GarmentType = "Pant"
	GarmentSuit  GarmentType = "Suit"
	GarmentKurta GarmentType = "Kurta"
)

// ParseGarmentType converts a raw string into a GarmentType.
func ParseGarmentType(s string) (GarmentType, error) {
	switch GarmentType(s) {
	case GarmentShirt, GarmentPant, GarmentSuit, GarmentKurta:
		return GarmentType(s), nil
	}
	return "", fmt.Errorf("unknown garment type %q", s)
}

// BodyType is a coarse build classification used to bias the estimate.
type BodyType string

const (
	BodySlim   BodyType = "Slim"
	BodyNormal BodyType = "Normal"
	BodyHeavy  BodyType = "Heavy"
)

// ParseBodyType converts a raw string into a BodyType.
func ParseBodyType(s string) (BodyType, error) {
	switch BodyType(s) {
	case BodySlim, BodyNormal, BodyHeavy:
		return BodyType(s), nil
	}
	return "", fmt.Errorf("unknown body type %q", s)
}

// Input carries the body metrics the estimate is computed from.
type Input struct {
	HeightFt float64
	Chest    float64
	Waist    float64
	Body     BodyType
}

// Result is the cloth-length recommendation. Meters is rendered with two
// fraction digits ("1.60", not "1.6").
type Result struct {
	Meters string `json:"meters"`
	Reason string `json:"reason"`
}

// Estimate computes the cloth length in meters for the given garment.
// Base length is chosen by height band, then a single additive margin is
// applied when the garment's heavy-build condition holds.
func Estimate(garment GarmentType, in Input) (Result, error) {
	if in.HeightFt <= 0 {
		return Result{}, fmt.Errorf("height is required")
	}

	var meters float64
	heavy := false

	switch garment {
	case GarmentShirt:
		switch {
		case in.HeightFt < 5.5:
			meters = 1.50
		case in.HeightFt < 5.9:
			meters = 1.60
		default:
			meters = 1.80
		}
		if in.Body == BodyHeavy || in.Chest > 44 {
			meters += 0.25
			heavy = true
		}

	case GarmentPant:
		switch {
		case in.HeightFt < 5.5:
			meters = 1.20
		case in.HeightFt < 6.0:
			meters = 1.30
		default:
			meters = 1.40
		}
		if in.Body == BodyHeavy {
			meters += 0.10
			heavy = true
		}

	case GarmentSuit:
		// Jacket plus pant cut from the same roll.
		switch {
		case in.HeightFt < 5.5:
			meters = 2.80
		case in.HeightFt < 6.0:
			meters = 3.00
		default:
			meters = 3.25
		}
		if in.Body == BodyHeavy || in.Chest > 46 {
			meters += 0.25
			heavy = true
		}

	case GarmentKurta:
		switch {
		case in.HeightFt < 5.5:
			meters = 2.00
		case in.HeightFt < 6.0:
			meters = 2.25
		default:
			meters = 2.50
		}

	default:
		return Result{}, fmt.Errorf("unknown garment type %q", garment)
	}

	return Result{
		Meters: strconv.FormatFloat(meters, 'f', 2, 64),
		Reason: reasoning(in, heavy),
	}, nil
}

func reasoning(in Input, heavy bool) string {
	reason := fmt.Sprintf("Based on height %s'", strconv.FormatFloat(in.HeightFt, 'f', -1, 64))
	if heavy {
		reason += fmt.Sprintf(" and heavy build (Chest %s\"), extra margins added.", strconv.FormatFloat(in.Chest, 'f', -1, 64))
	} else {
		reason += " and normal build."
	}
	return reason
}
