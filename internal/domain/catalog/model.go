// Package catalog maintains the set of activities available for
// scheduling: a fixed list of seeded defaults plus user-created entries.
// Defaults are never mutated in place; editing one produces a custom
// shadow copy and deleting one records a tombstone.
package catalog

import (
	"strconv"
	"time"
)

// Color is one of the fixed palette keys an activity can use.
type Color string

const (
	ColorPurple Color = "purple"
	ColorBlue   Color = "blue"
	ColorPink   Color = "pink"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorOrange Color = "orange"
	ColorRed    Color = "red"
	ColorTeal   Color = "teal"
)

// Colors lists the full palette in display order.
var Colors = []Color{
	ColorPurple, ColorBlue, ColorPink, ColorYellow,
	ColorGreen, ColorOrange, ColorRed, ColorTeal,
}

// Category classifies an activity.
type Category string

const (
	CategoryStudy    Category = "study"
	CategoryPlay     Category = "play"
	CategoryReading  Category = "reading"
	CategoryExercise Category = "exercise"
	CategoryMeal     Category = "meal"
	CategoryRest     Category = "rest"
	CategoryArt      Category = "art"
	CategoryMusic    Category = "music"
)

// Categories lists every valid category.
var Categories = []Category{
	CategoryStudy, CategoryPlay, CategoryReading, CategoryExercise,
	CategoryMeal, CategoryRest, CategoryArt, CategoryMusic,
}

// Activity is a reusable task template.
type Activity struct {
	ID                string    `json:"id"`
	UserID            *string   `json:"userId,omitempty"`
	ChildProfileID    *string   `json:"childProfileId,omitempty"`
	Name              string    `json:"name"`
	EmojiKey          string    `json:"emojiKey"`
	ColorKey          Color     `json:"colorKey"`
	DurationMinutes   int       `json:"durationMinutes"`
	Category          Category  `json:"category"`
	IsDefault         bool      `json:"isDefault"`
	OriginalDefaultID string    `json:"originalDefaultId,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// Emojis maps preset keys to their emoji characters.
var Emojis = map[string]string{
	"homework": "📝",
	"reading":  "📚",
	"play":     "🎮",
	"exercise": "🏃",
	"art":      "🎨",
	"music":    "🎵",
	"meal":     "🍎",
	"snack":    "🍪",
	"nap":      "😴",
	"study":    "✏️",
	"friend":   "👫",
	"outside":  "🌳",
	"roleplay": "🎭",
	"rest":     "🧘",
}

// Emoji resolves an activity's emoji key. Unknown keys pass through
// unchanged so a raw emoji character can be stored directly.
func (a Activity) Emoji() string {
	if emoji, ok := Emojis[a.EmojiKey]; ok {
		return emoji
	}
	return a.EmojiKey
}

type defaultSeed struct {
	name     string
	emojiKey string
	colorKey Color
	duration int
	category Category
}

var defaultSeeds = []defaultSeed{
	{"숙제하기", "homework", ColorBlue, 30, CategoryStudy},
	{"책 읽기", "reading", ColorPurple, 30, CategoryReading},
	{"놀이 시간", "play", ColorPink, 60, CategoryPlay},
	{"운동하기", "exercise", ColorGreen, 30, CategoryExercise},
	{"그림 그리기", "art", ColorOrange, 40, CategoryArt},
	{"음악 연습", "music", ColorYellow, 30, CategoryMusic},
	{"간식 먹기", "snack", ColorRed, 20, CategoryMeal},
	{"낮잠 자기", "nap", ColorTeal, 60, CategoryRest},
}

// defaultActivities materializes the seed list with stable synthetic ids
// default-0, default-1, ... and the given creation timestamp.
func defaultActivities(now time.Time) []Activity {
	list := make([]Activity, len(defaultSeeds))
	for i, seed := range defaultSeeds {
		list[i] = Activity{
			ID:              defaultID(i),
			Name:            seed.name,
			EmojiKey:        seed.emojiKey,
			ColorKey:        seed.colorKey,
			DurationMinutes: seed.duration,
			Category:        seed.category,
			IsDefault:       true,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
	}
	return list
}

func defaultID(i int) string {
	return "default-" + strconv.Itoa(i)
}
