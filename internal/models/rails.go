package models

// Disclosed payment rails and the preset amount table shown by the portal.
// These are fixed demo values, not live account data.

type BankAccountInfo struct {
	ID            BankAccount `json:"id"`
	BankName      string      `json:"bankName"`
	AccountNumber string      `json:"accountNumber"`
	AccountName   string      `json:"accountName"`
}

type CryptoNetworkInfo struct {
	ID      CryptoNetwork `json:"id"`
	Label   string        `json:"label"`
	Address string        `json:"address"`
}

type PresetAmount struct {
	ID  string  `json:"id"`
	NGN int64   `json:"ngn"`
	USD float64 `json:"usd"`
}

var BankAccounts = []BankAccountInfo{
	{ID: BankAccess, BankName: "ACCESS BANK", AccountNumber: "1907856695", AccountName: "EBUBECHUKWU IFEANYI ELIJAH"},
	{ID: BankSmartcash, BankName: "Stanbic IBTC", AccountNumber: "5190766096", AccountName: "Ebubechukwu Ifeanyi"},
}

var CryptoNetworks = []CryptoNetworkInfo{
	{ID: NetworkTRC20, Label: "USDT (TRC20)", Address: "TV8rxyuDHeyrBGMzc8bvbrbfDTH4MMEmNh"},
	{ID: NetworkERC20, Label: "USDT (ERC20)", Address: "0xe05fdb4e9b96386c4a1cb506b53c032ebe5a9f4a"},
	{ID: NetworkTON, Label: "USDT (TON)", Address: "UQCK6tTHarFlr3l1X71HMGRzJUJuvHTaGaAqncivV6GJQI4J"},
	{ID: NetworkBEP20, Label: "USDT (BEP20)", Address: "0xe05fdb4e9b96386c4a1cb506b53c032ebe5a9f4a"},
}

var PresetAmounts = []PresetAmount{
	{ID: "basic", NGN: 5000, USD: 2.65},
	{ID: "standard", NGN: 10000, USD: 5.29},
	{ID: "premium", NGN: 25000, USD: 13.23},
	{ID: "business", NGN: 50000, USD: 26.46},
	{ID: "enterprise", NGN: 100000, USD: 52.91},
	{ID: "corporate", NGN: 500000, USD: 264.55},
	{ID: "executive", NGN: 1000000, USD: 529.1},
	{ID: "platinum", NGN: 5000000, USD: 2645.5},
	{ID: "diamond", NGN: 12000000, USD: 6349.21},
}

// CryptoNetworkByID returns the disclosed deposit info for a network.
func CryptoNetworkByID(id CryptoNetwork) (CryptoNetworkInfo, bool) {
	for _, n := range CryptoNetworks {
		if n.ID == id {
			return n, true
		}
	}
	return CryptoNetworkInfo{}, false
}
