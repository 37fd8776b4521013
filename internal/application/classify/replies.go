package classify

// NoServiceReply answers a message no backend could take.
const NoServiceReply = "Şu anda bu soruyu yanıtlayabilecek bir servis bulunmuyor. Hava durumu için bir şehir adı, bilgi için \"... nedir\" gibi bir soru deneyebilirsiniz."

var cannedReplies = map[Category]string{
	CategoryGreeting:    "Merhaba! Size nasıl yardımcı olabilirim?",
	CategoryThanks:      "Rica ederim! Başka bir sorunuz olursa buradayım.",
	CategorySmallTalk:   "İyiyim, teşekkür ederim! Size nasıl yardımcı olabilirim?",
	CategoryInsult:      "Size yardımcı olmak için buradayım. Lütfen sorunuzu nazikçe tekrar sorar mısınız?",
	CategoryNonsense:    "Sizi tam anlayamadım. Sorunuzu biraz daha açık yazabilir misiniz?",
	CategoryProfanity:   "Lütfen saygılı bir dil kullanalım. Size nasıl yardımcı olabilirim?",
	CategoryFrustration: "Bunu duyduğuma üzüldüm. Yardımcı olabileceğim bir şey var mı?",
}

// StandardReply returns the reply for a rule, preferring the rule's own text.
func StandardReply(rule Rule) string {
	if rule.Reply != "" {
		return rule.Reply
	}
	if reply, ok := cannedReplies[rule.Category]; ok {
		return reply
	}
	return NoServiceReply
}
