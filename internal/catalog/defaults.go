package catalog

// Default returns the built-in indicator set. Aliases keep the Korean
// identifiers older clients send.
func Default() *Catalog {
	return New(map[Category][]Entry{
		Commodities: {
			// precious metals
			{Name: "Gold", Symbol: "GC=F", Aliases: []string{"금"}},
			{Name: "Silver", Symbol: "SI=F", Aliases: []string{"은"}},
			{Name: "Platinum", Symbol: "PL=F", Aliases: []string{"백금"}},
			// industrial metals
			{Name: "Copper", Symbol: "HG=F", Aliases: []string{"구리"}},
			{Name: "Aluminum", Symbol: "ALI=F", Aliases: []string{"알루미늄"}},
			// energy
			{Name: "Crude Oil (WTI)", Symbol: "CL=F", Aliases: []string{"원유(미국)"}},
			{Name: "Crude Oil (Brent)", Symbol: "BZ=F", Aliases: []string{"원유(브렌트)"}},
			{Name: "Natural Gas", Symbol: "NG=F", Aliases: []string{"천연가스"}},
			// agriculture
			{Name: "Corn", Symbol: "C=F", Aliases: []string{"옥수수"}},
			{Name: "Soybeans", Symbol: "S=F", Aliases: []string{"대두"}},
			{Name: "Wheat", Symbol: "W=F", Aliases: []string{"밀"}},
			{Name: "Coffee", Symbol: "KC=F", Aliases: []string{"커피"}},
			{Name: "Sugar", Symbol: "SB=F", Aliases: []string{"설탕"}},
		},
		Stocks: {
			{Name: "S&P500", Symbol: "^GSPC"},
			{Name: "NASDAQ", Symbol: "^IXIC"},
			{Name: "KOSPI", Symbol: "^KS11"},
			{Name: "VIX", Symbol: "^VIX"},
			{Name: "NVIDIA", Symbol: "NVDA", Aliases: []string{"엔비디아"}},
			{Name: "Sandisk", Symbol: "SNDK"},
			{Name: "TSMC", Symbol: "TSM"},
			{Name: "Apple", Symbol: "AAPL", Aliases: []string{"애플"}},
			{Name: "Alphabet", Symbol: "GOOGL", Aliases: []string{"알파벳"}},
			{Name: "Samsung Electronics", Symbol: "005930.KS", Aliases: []string{"삼성전자"}},
			{Name: "SK Hynix", Symbol: "000660.KS", Aliases: []string{"하이닉스"}},
			{Name: "Kakao", Symbol: "035720.KS", Aliases: []string{"카카오"}},
			{Name: "NAVER", Symbol: "035420.KS"},
			{Name: "Hanatour", Symbol: "039130.KS", Aliases: []string{"하나투어"}},
			{Name: "Hyundai Motor", Symbol: "005380.KS", Aliases: []string{"현대차"}},
			{Name: "Kia", Symbol: "000270.KS", Aliases: []string{"기아차"}},
		},
		Exchange: {
			{Name: "KRW/USD", Symbol: "USDKRW=X"},
			{Name: "KRW/JPY", Symbol: "JPYKRW=X"},
			{Name: "KRW/GBP", Symbol: "GBPKRW=X"},
			{Name: "KRW/EUR", Symbol: "EURKRW=X"},
			// treasury yields
			{Name: "US 2Y", Symbol: "^IRX", Aliases: []string{"미국 2년물"}},
			{Name: "US 5Y", Symbol: "^FVX", Aliases: []string{"미국 5년물"}},
			{Name: "US 10Y", Symbol: "^TNX", Aliases: []string{"미국 10년물"}},
			{Name: "US 30Y", Symbol: "^TYX", Aliases: []string{"미국 30년물"}},
			{Name: "Dollar Index", Symbol: "DX-Y.NYB", Aliases: []string{"달러 인덱스"}},
		},
	})
}
