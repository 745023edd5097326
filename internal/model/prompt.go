package model

// Prompts is the fixed list a round's prompt is drawn from.
var Prompts = []string{
	"A song for a late night drive",
	"A song that gets the party started",
	"A song you'd play at a wedding",
	"A song that makes you cry",
	"The best one-hit wonder",
	"A guilty pleasure song",
	"A song from your childhood",
	"The ultimate karaoke song",
	"A song for a movie villain's entrance",
	"A song to run to",
	"A song that feels like summer",
	"The best cover of all time",
	"A song you'd play to an alien",
	"A song for a breakup",
	"The most overrated song ever",
}
