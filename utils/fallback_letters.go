package utils

import "strings"

// Fallback letter templates, used when every generation provider has failed.
// The category is inferred from keywords in the prompt so the user still gets
// something on-topic instead of an error.

type fallbackCategory struct {
	name     string
	keywords []string
	template string
}

var fallbackCategories = []fallbackCategory{
	{
		name:     "love",
		keywords: []string{"girlfriend", "boyfriend", "wife", "husband", "love", "romantic", "valentine", "anniversary", "crush", "darling"},
		template: `My dearest,

From the moment you came into my life, everything changed. The ordinary days became extraordinary, and every small moment with you feels like a treasure I get to keep.

I don't always find the right words to tell you what you mean to me, so let this letter say it plainly: I love you, more than yesterday and less than tomorrow.

Forever yours`,
	},
	{
		name:     "friendship",
		keywords: []string{"friend", "buddy", "bestie", "pal"},
		template: `Dear friend,

Some people walk into our lives and leave footprints that never fade. You are one of those people. Thank you for the laughter, for the late conversations, and for standing beside me when it mattered most.

Whatever roads we each take from here, know that you will always have a place in my story.

With all my appreciation`,
	},
	{
		name:     "family",
		keywords: []string{"mom", "mother", "dad", "father", "sister", "brother", "grandma", "grandpa", "family", "parents"},
		template: `Dear one,

No distance or busy week changes what you mean to me. You are the home I carry with me everywhere, the voice I hear when I need courage, and the reason I know what unconditional love looks like.

Thank you for everything you have given me, seen and unseen.

With love, always`,
	},
	{
		name:     "gratitude",
		keywords: []string{"thank", "thanks", "grateful", "gratitude", "appreciate"},
		template: `Dear friend,

It is easy to let kindness pass without a word, so I wanted to stop and say it properly: thank you. What you did meant more to me than you probably realize, and I will not forget it.

People like you make the world gentler.

With heartfelt thanks`,
	},
	{
		name:     "apology",
		keywords: []string{"sorry", "apolog", "forgive", "mistake"},
		template: `Dear one,

I have been searching for the right words, and the truest ones are the simplest: I am sorry. I was wrong, and you deserved better from me.

I hope you can forgive me, not because I deserve it, but because what we have is worth more than my pride.

Humbly yours`,
	},
}

const fallbackGeneral = `Dear friend,

I sat down to write you something perfect, and found that perfect words don't exist, only honest ones. So here is the honest truth: you matter to me, today and every day.

I hope this little letter finds you well and brings a smile, the way thinking of you brings one to me.

Warmly`

// FallbackLetterCategory returns the template category inferred from the
// prompt's keywords, or "general".
func FallbackLetterCategory(prompt string) string {
	p := strings.ToLower(prompt)
	for _, c := range fallbackCategories {
		for _, kw := range c.keywords {
			if strings.Contains(p, kw) {
				return c.name
			}
		}
	}
	return "general"
}

// FallbackLetter returns a static letter matched to the prompt's keywords.
// It never returns an empty string.
func FallbackLetter(prompt string) string {
	name := FallbackLetterCategory(prompt)
	for _, c := range fallbackCategories {
		if c.name == name {
			return c.template
		}
	}
	return fallbackGeneral
}
