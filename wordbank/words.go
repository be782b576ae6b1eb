package wordbank

// Category groups words by theme.
type Category string

const (
	CategoryAnimals       Category = "animals"
	CategoryObjects       Category = "objects"
	CategoryActions       Category = "actions"
	CategoryFood          Category = "food"
	CategoryPlaces        Category = "places"
	CategoryNature        Category = "nature"
	CategoryTechnology    Category = "technology"
	CategorySports        Category = "sports"
	CategoryEntertainment Category = "entertainment"
)

// Difficulty is a coarse word difficulty bucket.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Catalog maps categories and difficulties to word lists.
type Catalog map[Category]map[Difficulty][]string

// DefaultCatalog returns a fresh copy of the built-in word lists, safe for
// callers to mutate.
func DefaultCatalog() Catalog {
	src := Catalog{
		CategoryAnimals: {
			DifficultyEasy:   {"cat", "dog", "fish", "bird", "cow", "pig", "duck", "frog"},
			DifficultyMedium: {"elephant", "giraffe", "penguin", "dolphin", "kangaroo", "octopus", "hedgehog", "flamingo"},
			DifficultyHard:   {"platypus", "chameleon", "armadillo", "narwhal", "axolotl", "pangolin"},
		},
		CategoryObjects: {
			DifficultyEasy:   {"chair", "table", "clock", "book", "lamp", "key", "phone", "cup"},
			DifficultyMedium: {"umbrella", "telescope", "backpack", "scissors", "compass", "ladder", "anchor", "candle"},
			DifficultyHard:   {"gramophone", "kaleidoscope", "metronome", "typewriter", "hourglass", "chandelier"},
		},
		CategoryActions: {
			DifficultyEasy:   {"run", "jump", "swim", "sleep", "dance", "sing", "eat", "wave"},
			DifficultyMedium: {"juggling", "climbing", "whistling", "painting", "fishing", "sneezing", "yawning", "stretching"},
			DifficultyHard:   {"procrastinating", "eavesdropping", "tightrope walking", "sleepwalking", "daydreaming"},
		},
		CategoryFood: {
			DifficultyEasy:   {"pizza", "apple", "bread", "cheese", "egg", "cake", "banana", "taco"},
			DifficultyMedium: {"spaghetti", "croissant", "pancakes", "burrito", "sushi", "waffle", "pretzel", "dumpling"},
			DifficultyHard:   {"ratatouille", "bruschetta", "tiramisu", "quesadilla", "charcuterie"},
		},
		CategoryPlaces: {
			DifficultyEasy:   {"beach", "school", "park", "farm", "house", "castle", "bridge", "island"},
			DifficultyMedium: {"lighthouse", "volcano", "library", "airport", "stadium", "waterfall", "desert", "harbor"},
			DifficultyHard:   {"observatory", "amphitheater", "catacombs", "archipelago", "planetarium"},
		},
		CategoryNature: {
			DifficultyEasy:   {"tree", "sun", "moon", "star", "cloud", "rain", "flower", "leaf"},
			DifficultyMedium: {"rainbow", "tornado", "glacier", "meteor", "cactus", "coral", "lightning", "avalanche"},
			DifficultyHard:   {"bioluminescence", "stalactite", "aurora borealis", "photosynthesis", "geyser"},
		},
		CategoryTechnology: {
			DifficultyEasy:   {"robot", "laptop", "camera", "rocket", "battery", "mouse", "screen", "drone"},
			DifficultyMedium: {"satellite", "keyboard", "headphones", "microchip", "submarine", "printer", "antenna", "joystick"},
			DifficultyHard:   {"cryptocurrency", "holodeck", "accelerometer", "oscilloscope", "server farm"},
		},
		CategorySports: {
			DifficultyEasy:   {"soccer", "tennis", "golf", "boxing", "skiing", "surfing", "bowling", "hockey"},
			DifficultyMedium: {"archery", "fencing", "gymnastics", "snowboarding", "badminton", "wrestling", "rowing", "karate"},
			DifficultyHard:   {"pentathlon", "curling", "parkour", "water polo", "synchronized swimming"},
		},
		CategoryEntertainment: {
			DifficultyEasy:   {"movie", "music", "dance", "clown", "magic", "circus", "guitar", "drum"},
			DifficultyMedium: {"orchestra", "karaoke", "puppet show", "ventriloquist", "accordion", "theater", "fireworks", "carousel"},
			DifficultyHard:   {"masquerade", "improvisation", "shadow puppetry", "one-man band"},
		},
	}

	out := make(Catalog, len(src))
	for cat, byDiff := range src {
		out[cat] = make(map[Difficulty][]string, len(byDiff))
		for diff, words := range byDiff {
			out[cat][diff] = append([]string(nil), words...)
		}
	}
	return out
}
