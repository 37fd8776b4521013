package query

// User-facing replies. Every failure path ends in one of these.
const (
	msgLocationNotFound  = "Üzgünüm, belirtilen şehir için konum bilgisi bulunamadı."
	msgWeatherFailed     = "Hava durumu bilgisi alınamadı. Lütfen daha sonra tekrar deneyin."
	msgWeatherEmpty      = "Üzgünüm, hava durumu bilgisi bulunamadı."
	msgWeatherError      = "Hava durumu bilgisi alınırken bir hata oluştu. Lütfen daha sonra tekrar deneyin."
	msgSummaryFailed     = "Wikipedia'dan bilgi alınamadı. Lütfen daha sonra tekrar deneyin."
	msgSummaryError      = "Wikipedia'dan bilgi alınırken bir hata oluştu. Lütfen daha sonra tekrar deneyin."
	msgSummaryNotFound   = "Üzgünüm, aradığınız bilgi Wikipedia'da bulunamadı."
	msgEmptyMessage      = "Üzgünüm, boş bir mesaj aldım. Lütfen bir soru sorun veya mesaj yazın."
	msgCredentialMissing = "API anahtarı bulunamadı. Lütfen API anahtarını kontrol edin."
	msgGenerativeFailed  = "Üzgünüm, şu anda yanıt veremiyorum. Teknik bir sorun oluştu: %s"
	msgUnexpected        = "Üzgünüm, beklenmeyen bir hata oluştu. Lütfen daha sonra tekrar deneyin."
	msgUnknownError      = "Bilinmeyen hata"
	msgEmptyResponse     = "Boş yanıt alındı"
	msgUnknownCondition  = "Bilinmiyor"
)
