package assessment

import (
	"math/rand"
	"sort"
)

// Target distribution over difficulty tiers for a full-size attempt.
const (
	easyShare   = 40
	mediumShare = 30
)

type tier struct {
	difficulty Difficulty
	target     int
	pool       []Question
}

// selectQuestions picks up to total questions from the bank, aiming for
// 40% easy / 30% medium / 30% hard. A tier that cannot meet its target
// passes the shortfall to whichever tier has the most questions left, so
// a thin bank still yields an attempt (minimum one question). Selection
// within a tier is driven by the attempt's seeded RNG, making the picked
// set reproducible from the seed.
func selectQuestions(bank []Question, total int, seed uint64) []Question {
	if total <= 0 || len(bank) == 0 {
		return nil
	}

	easyTarget := total * easyShare / 100
	mediumTarget := total * mediumShare / 100
	hardTarget := total - easyTarget - mediumTarget

	tiers := []tier{
		{difficulty: DifficultyEasy, target: easyTarget},
		{difficulty: DifficultyMedium, target: mediumTarget},
		{difficulty: DifficultyHard, target: hardTarget},
	}

	for _, q := range bank {
		for i := range tiers {
			if q.Difficulty == tiers[i].difficulty {
				tiers[i].pool = append(tiers[i].pool, q)
				break
			}
		}
	}

	rng := rand.New(rand.NewSource(int64(seed)))
	for i := range tiers {
		shuffleTier(tiers[i].pool, rng)
	}

	picked := make([]Question, 0, total)
	shortfall := 0
	for i := range tiers {
		take := tiers[i].target
		if take > len(tiers[i].pool) {
			shortfall += take - len(tiers[i].pool)
			take = len(tiers[i].pool)
		}
		picked = append(picked, tiers[i].pool[:take]...)
		tiers[i].pool = tiers[i].pool[take:]
	}

	for shortfall > 0 {
		best := -1
		for i := range tiers {
			if len(tiers[i].pool) == 0 {
				continue
			}
			if best == -1 || len(tiers[i].pool) > len(tiers[best].pool) {
				best = i
			}
		}
		if best == -1 {
			break
		}
		take := shortfall
		if take > len(tiers[best].pool) {
			take = len(tiers[best].pool)
		}
		picked = append(picked, tiers[best].pool[:take]...)
		tiers[best].pool = tiers[best].pool[take:]
		shortfall -= take
	}

	return picked
}

// shuffleTier orders the pool by id before shuffling so the permutation
// depends only on the seed, not on bank read order.
func shuffleTier(pool []Question, rng *rand.Rand) {
	sort.Slice(pool, func(i, j int) bool {
		return pool[i].ID.String() < pool[j].ID.String()
	})
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
}
