package game

import "constellations/internal/geom"

// StarFacts is the deck shown between levels.
var StarFacts = []string{
	"The Sun is a yellow dwarf star about 4.6 billion years old, roughly halfway through its life.",
	"Light from the Sun takes about 8 minutes and 20 seconds to reach Earth.",
	"Proxima Centauri is the closest star to the Sun, about 4.24 light-years away.",
	"Sirius, in Canis Major, is the brightest star in the night sky.",
	"Betelgeuse, the red shoulder of Orion, is a supergiant so large it would swallow the orbit of Mars.",
	"Polaris, the North Star, sits almost directly above Earth's north pole, which is why it barely moves.",
	"The International Astronomical Union recognises 88 official constellations.",
	"The Big Dipper is not a constellation but an asterism within Ursa Major.",
	"Stars twinkle because turbulence in Earth's atmosphere bends their light.",
	"A star's colour reveals its temperature: blue stars are hottest, red stars are coolest.",
	"Most stars in the Milky Way are red dwarfs, too faint to see with the naked eye.",
	"Neutron stars are so dense that a teaspoon of their material would weigh about a billion tonnes.",
	"When a massive star runs out of fuel it can explode as a supernova, briefly outshining its whole galaxy.",
	"The Milky Way contains somewhere between 100 and 400 billion stars.",
	"Orion's Belt is made of three stars: Alnitak, Alnilam and Mintaka.",
	"Vega was the northern pole star around 12,000 BC and will be again around 13,700 AD.",
	"The Pleiades, or Seven Sisters, is an open cluster of young stars about 444 light-years away.",
	"Some of the starlight you see tonight left its star before humans existed.",
	"Stars form inside cold clouds of gas and dust called nebulae.",
	"The Southern Cross is the smallest of the 88 modern constellations.",
	"Hydra is the largest constellation, stretching over a quarter of the sky.",
	"Binary stars orbit a shared centre of mass, and more than half of Sun-like stars have a companion.",
	"Antares, the heart of Scorpius, is named for being a rival of Mars in colour.",
	"White dwarfs are the glowing cores left behind when stars like the Sun shed their outer layers.",
	"The constellations of the zodiac lie along the ecliptic, the Sun's apparent path across the sky.",
	"Ancient Polynesian navigators crossed the Pacific by memorising where stars rise and set.",
	"Alpha Centauri A and B are Sun-like stars orbiting each other every 80 years.",
	"Rigel, Orion's blue-white foot, is tens of thousands of times more luminous than the Sun.",
	"The Andromeda Galaxy, visible as a faint smudge, is the most distant object you can see without a telescope.",
	"Stars are mostly hydrogen and helium, fused in their cores into heavier elements.",
	"The carbon in your body was forged inside stars that died before the Sun was born.",
	"Cassiopeia is easy to spot by its W shape near the north celestial pole.",
}

// FactDeck deals facts without repeats until every fact has been shown.
type FactDeck struct {
	facts  []string
	unseen []int
	rng    *geom.Rand
}

func NewFactDeck(facts []string, rng *geom.Rand) *FactDeck {
	d := &FactDeck{facts: facts, rng: rng}
	d.Reset()
	return d
}

// Reset returns every fact to the deck.
func (d *FactDeck) Reset() {
	d.unseen = d.unseen[:0]
	for i := range d.facts {
		d.unseen = append(d.unseen, i)
	}
}

// Next draws an unseen fact, refilling the deck once it is empty.
func (d *FactDeck) Next() string {
	if len(d.facts) == 0 {
		return ""
	}
	if len(d.unseen) == 0 {
		d.Reset()
	}
	i := d.rng.Intn(len(d.unseen))
	idx := d.unseen[i]
	last := len(d.unseen) - 1
	d.unseen[i] = d.unseen[last]
	d.unseen = d.unseen[:last]
	return d.facts[idx]
}

// Remaining is the number of facts not yet dealt since the last refill.
func (d *FactDeck) Remaining() int { return len(d.unseen) }
