package model

import (
	"strings"
)

type Position string

const (
	POS_UNKNOWN Position = "UNK"
	POS_QB      Position = "QB"
	POS_RB      Position = "RB"
	POS_WR      Position = "WR"
	POS_TE      Position = "TE"
	// POS_RDP is how KTC labels future rookie draft picks that are traded
	// as assets. It never appears in the sleeper player data.
	POS_RDP Position = "RDP"
)

func ParsePosition(pos string) Position {
	pos = strings.ToLower(pos)
	switch pos {
	case "qb":
		return POS_QB
	case "rb", "fb":
		return POS_RB
	case "wr":
		return POS_WR
	case "te":
		return POS_TE
	case "rdp":
		return POS_RDP
	default:
		return POS_UNKNOWN
	}
}
