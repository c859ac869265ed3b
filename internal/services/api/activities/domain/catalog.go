// Package domain holds the fixed activity catalog
package domain

import "bukatsu/internal/core/embed"

// Activity aliases the composer's catalog entry so handlers and the composer
// agree on one shape
type Activity = embed.Activity

// catalog is the process-wide list, ordered for display
// "other" is the single custom entry; its name is replaced by user input
var catalog = []Activity{
	{ID: "muscle", Name: "筋トレ部", Emoji: "🏋️"},
	{ID: "running", Name: "ランニング部", Emoji: "🏃"},
	{ID: "mountain", Name: "登山部", Emoji: "🏔️"},
	{ID: "history", Name: "歴史アドベンチャー部", Emoji: "📜"},
	{ID: "mahjong", Name: "麻雀部", Emoji: "🀄"},
	{ID: "other", Name: "その他", Emoji: "📝", IsCustom: true},
}

var byID = func() map[string]Activity {
	m := make(map[string]Activity, len(catalog))
	for _, a := range catalog {
		m[a.ID] = a
	}
	return m
}()

// All returns the catalog in display order. Callers must not mutate it
func All() []Activity { return catalog }

// ByID looks up an activity, second return is false when unknown
func ByID(id string) (Activity, bool) {
	a, ok := byID[id]
	return a, ok
}

// IsValid reports whether id names a catalog entry
func IsValid(id string) bool {
	_, ok := byID[id]
	return ok
}
