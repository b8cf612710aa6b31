package provider

const (
	productPrompt = "Write an SEO-optimised description for a professional gaming product " +
		"(mouse, keyboard, headset, etc.). Cover technical features, benefits and keywords. " +
		"150 words maximum."
	socialPrompt = "Write a viral Instagram/TikTok post about professional gaming. " +
		"Use emojis, hashtags and a call to action. 100 words maximum."
	combinedPrompt = "Write 2 pieces of content for a professional gaming store: " +
		"1) a gaming product description (150 words) 2) a viral social media post (100 words). " +
		"Separate them with '---'"

	productMaxTokens  = 200
	socialMaxTokens   = 150
	combinedMaxTokens = 300

	combinedSeparator = "---"
)
