package align

import (
	"math"
	"math/rand"
	"sync"

	"github.com/cwbudde/algo-shpb/internal/numeric"
)

// genome is one candidate shift pair. The search space is continuous; pairs
// are rounded to integers for evaluation.
type genome struct {
	t float64
	r float64
}

func roundShift(g genome) (int, int) {
	return int(math.Round(g.t)), int(math.Round(g.r))
}

// search runs a DE/rand/1/bin differential evolution loop over the bounded
// shift grid. Fitness values are memoized per integer pair, so the search
// never scores the same pair twice. All random draws happen on the calling
// goroutine; only the pure fitness evaluations fan out to workers, which
// keeps the result independent of the worker count.
func (a *Aligner) search(eval func(shiftT, shiftR int) Fitness) (int, int, Fitness, int) {
	cfg := a.cfg
	rng := rand.New(rand.NewSource(cfg.Seed))

	pop := make([]genome, cfg.Population)
	fit := make([]Fitness, cfg.Population)
	cache := make(map[[2]int]Fitness)

	for i := range pop {
		pop[i] = genome{
			t: uniformIn(rng, cfg.TransmittedBounds),
			r: uniformIn(rng, cfg.ReflectedBounds),
		}
	}

	a.scoreBatch(pop, fit, cache, eval)

	trials := make([]genome, cfg.Population)
	trialFit := make([]Fitness, cfg.Population)

	for g := 0; g < cfg.Generations; g++ {
		for i := range pop {
			x, y, z := pickDistinct(rng, cfg.Population, i)

			mt := pop[x].t + cfg.MutationFactor*(pop[y].t-pop[z].t)
			mr := pop[x].r + cfg.MutationFactor*(pop[y].r-pop[z].r)

			trial := pop[i]

			// Binomial crossover with a forced dimension, so every trial
			// differs from its parent.
			forced := rng.Intn(2)
			if forced == 0 || rng.Float64() < cfg.CrossoverRate {
				trial.t = clampTo(mt, cfg.TransmittedBounds)
			}

			if forced == 1 || rng.Float64() < cfg.CrossoverRate {
				trial.r = clampTo(mr, cfg.ReflectedBounds)
			}

			trials[i] = trial
		}

		a.scoreBatch(trials, trialFit, cache, eval)

		for i := range pop {
			if trialFit[i].Total >= fit[i].Total {
				pop[i], fit[i] = trials[i], trialFit[i]
			}
		}
	}

	best := 0
	for i := 1; i < len(fit); i++ {
		if fit[i].Total > fit[best].Total {
			best = i
		}
	}

	bestT, bestR := roundShift(pop[best])

	return bestT, bestR, fit[best], len(cache)
}

// scoreBatch fills out[i] with the fitness of each genome, evaluating only
// integer pairs missing from the cache. Uncached pairs fan out to the
// configured number of workers.
func (a *Aligner) scoreBatch(gs []genome, out []Fitness, cache map[[2]int]Fitness, eval func(int, int) Fitness) {
	keys := make([][2]int, len(gs))
	seen := make(map[[2]int]bool)

	var todo [][2]int
	for i, g := range gs {
		t, r := roundShift(g)
		k := [2]int{t, r}
		keys[i] = k

		if _, ok := cache[k]; !ok && !seen[k] {
			seen[k] = true
			todo = append(todo, k)
		}
	}

	results := make([]Fitness, len(todo))

	workers := a.cfg.Workers
	if workers > len(todo) {
		workers = len(todo)
	}

	if workers <= 1 {
		for i, k := range todo {
			results[i] = eval(k[0], k[1])
		}
	} else {
		jobs := make(chan int)

		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					results[i] = eval(todo[i][0], todo[i][1])
				}
			}()
		}

		for i := range todo {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	}

	for i, k := range todo {
		cache[k] = results[i]
	}

	for i, k := range keys {
		out[i] = cache[k]
	}
}

func uniformIn(rng *rand.Rand, b Bounds) float64 {
	return float64(b.Min) + rng.Float64()*float64(b.Max-b.Min)
}

func clampTo(v float64, b Bounds) float64 {
	return numeric.Clamp(v, float64(b.Min), float64(b.Max))
}

// pickDistinct draws three distinct population indices, all different from
// skip.
func pickDistinct(rng *rand.Rand, np, skip int) (int, int, int) {
	var idx [3]int

	for k := 0; k < 3; {
		c := rng.Intn(np)
		if c == skip {
			continue
		}

		dup := false
		for j := 0; j < k; j++ {
			if idx[j] == c {
				dup = true
				break
			}
		}

		if dup {
			continue
		}

		idx[k] = c
		k++
	}

	return idx[0], idx[1], idx[2]
}
