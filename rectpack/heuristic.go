package rectpack

import (
	"fmt"
	"strings"
)

type Heuristic uint16

const (
	Shelf             Heuristic = 0x0
	Skyline           Heuristic = 0x1
	Guillotine        Heuristic = 0x2
	FirstFit          Heuristic = 0x00
	BestShortSideFit  Heuristic = 0x00
	BestLongSideFit   Heuristic = 0x10
	BestAreaFit       Heuristic = 0x20
	BottomLeft        Heuristic = 0x30
	BestHeightFit     Heuristic = 0x40
	WorstAreaFit      Heuristic = 0x50
	WorstShortSideFit Heuristic = 0x60
	WorstLongSideFit  Heuristic = 0x70

	SplitShorterLeftoverAxis Heuristic = 0x0000
	SplitLongerLeftoverAxis  Heuristic = 0x0100
	SplitMinimizeArea        Heuristic = 0x0200
	SplitMaximizeArea        Heuristic = 0x0300
	SplitShorterAxis         Heuristic = 0x0400
	SplitLongerAxis          Heuristic = 0x0500

	typeMask  Heuristic = 0x000F
	fitMask   Heuristic = 0x00F0
	splitMask Heuristic = 0x0F00

	/**********************************************************************************************
	* Present combinations of valid heuristics
	**********************************************************************************************/
	ShelfFF        = Shelf | FirstFit
	ShelfBHF       = Shelf | BestHeightFit
	SkylineBL      = Skyline | BottomLeft
	GuillotineBAF  = Guillotine | BestAreaFit | SplitMinimizeArea
	GuillotineBSSF = Guillotine | BestShortSideFit | SplitMinimizeArea
	GuillotineBLSF = Guillotine | BestLongSideFit | SplitMinimizeArea
	GuillotineWAF  = Guillotine | WorstAreaFit | SplitMinimizeArea
	GuillotineWSSF = Guillotine | WorstShortSideFit | SplitMinimizeArea
	GuillotineWLSF = Guillotine | WorstLongSideFit | SplitMinimizeArea
)

// Algorithm returns the algorithm portion of the bitmask.
func (e Heuristic) Algorithm() Heuristic {
	return e & typeMask
}

// Bin returns the bin selection method portion of the bitmask.
func (e Heuristic) Bin() Heuristic {
	return e & fitMask
}

// Split returns the split method portion of the bitmask.
func (e Heuristic) Split() Heuristic {
	return e & splitMask
}

// String returns the algorithm name, as accepted by ResolveAlgorithm.
func (e Heuristic) String() string {
	switch e.Algorithm() {
	case Shelf:
		return "shelf"
	case Skyline:
		return "skyline"
	case Guillotine:
		return "guillotine"
	}
	return fmt.Sprintf("Heuristic(%#x)", uint16(e))
}

// ResolveAlgorithm 根据算法名和变体名返回对应的启发式组合。
// 名称不区分大小写，变体为空时使用该算法的默认变体。
func ResolveAlgorithm(algo, variant string) (Heuristic, error) {
	algo = strings.ToLower(algo)
	variant = strings.ToLower(variant)
	switch algo {
	case "shelf", "":
		switch variant {
		case "", "firstfit":
			return ShelfFF, nil
		case "bestheightfit":
			return ShelfBHF, nil
		}
	case "skyline":
		switch variant {
		case "", "bottomleft":
			return SkylineBL, nil
		}
	case "guillotine":
		switch variant {
		case "", "bestareafit":
			return GuillotineBAF, nil
		case "bestshortsidefit":
			return GuillotineBSSF, nil
		case "bestlongsidefit":
			return GuillotineBLSF, nil
		case "worstareafit":
			return GuillotineWAF, nil
		case "worstshortsidefit":
			return GuillotineWSSF, nil
		case "worstlongsidefit":
			return GuillotineWLSF, nil
		}
	default:
		return 0, fmt.Errorf("unknown packing algorithm %q", algo)
	}
	return 0, fmt.Errorf("unknown %s variant %q", algo, variant)
}
