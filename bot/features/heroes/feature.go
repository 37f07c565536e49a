package heroes

import (
	"context"
	"fmt"
	"strings"

	"casinobot/bot/common"
	"casinobot/domain/entities"
	"casinobot/domain/interfaces"
)

// Roles in the order the full pool is built
var Roles = []string{"tank", "damage", "support"}

// Overwatch is the hero pool per role
var Overwatch = map[string][]string{
	"tank":    {"Reinhardt", "D.Va", "WINTON", "Sigma", "Orisa", "Zarya", "Wrecking Ball..... or whoever you reroll next", "Roadhog", "Mauga", "Junker Queen", "Hazard", "Doomfist"},
	"damage":  {"Vendetta", "Ashe", "Bastion", "Cassidy", "Echo", "The awesome Genji", "Freja", "Hanzo", "Junkrat", "Sata- I mean Mei", "Pharah in the sky", "Reaper", "Sojourn", "Soldier", "...Sombra", "Symmetra", "TORB TIMEEE", "Tracer", "Venture", "Widowmaker"},
	"support": {"Ana", "Mercy", "Kiriko", "Lucio", "Baptiste", "Brigitte", "Illiari", "Juno", "Wife Leaver", "Lucio", "Moira", "Zenyatta"},
}

// PickHero picks a hero for role, or from every role when role is empty
func PickHero(rng interfaces.Randomizer, role string) (string, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		var pool []string
		for _, r := range Roles {
			pool = append(pool, Overwatch[r]...)
		}
		return common.Pick(rng, pool), nil
	}

	pool, ok := Overwatch[role]
	if !ok {
		return "", entities.NewValidationError(entities.ErrUnknownRole, role)
	}
	return common.Pick(rng, pool), nil
}

type Feature struct {
	rng interfaces.Randomizer
}

func New(rng interfaces.Randomizer) *Feature {
	return &Feature{
		rng: rng,
	}
}

// HandlePickHero answers pickHero [role]
func (f *Feature) HandlePickHero(ctx context.Context, inv *common.Invocation) (string, error) {
	role, _ := inv.PlainArg(0)
	hero, err := PickHero(f.rng, role)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("**%s**", hero), nil
}
