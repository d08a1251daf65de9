package emvqr

// Top-level tags, in the order the encoder emits them.
const (
	TagPayloadFormat     = "00"
	TagPointOfInitiation = "01"
	TagMerchantAccount   = "26"
	TagCategoryCode      = "52"
	TagCurrency          = "53"
	TagAmount            = "54"
	TagCountryCode       = "58"
	TagMerchantName      = "59"
	TagMerchantCity      = "60"
	TagAdditionalData    = "62"
	TagCRC               = "63"
)

// Merchant account information (tag 26) sub-tags.
const (
	SubTagAccountGUID  = "00" // Reverse-domain gateway identifier, e.g. "fonepay.com"
	SubTagMerchantCode = "07"
	SubTagShortCode    = "09"
)

// Additional data (tag 62) sub-tags.
const (
	SubTagBillNumber = "01" // Bill reference / remarks
	SubTagTerminalID = "07"
)

const (
	PayloadFormatIndicator = "01"
	InitiationStatic       = "11" // Reusable code, no amount embedded
	InitiationDynamic      = "12" // One-shot code carrying an amount

	// CRCHeader is the tag and length of the checksum field. The CRC is
	// computed over everything up to and including this header.
	CRCHeader = TagCRC + "04"

	MaxValueLength  = 99
	MaxAmountLength = 13
	// EMV caps the terminal label at 25 characters.
	MaxTerminalIDLength = 25

	DefaultRemarks      = "POS_PAY"
	DefaultCountryCode  = "NP"
	DefaultCurrencyCode = "524" // NPR
	DefaultCategoryCode = "5411"
)

var tagNames = map[string]string{
	TagPayloadFormat:     "payload_format",
	TagPointOfInitiation: "point_of_initiation",
	TagMerchantAccount:   "merchant_account",
	TagCategoryCode:      "category_code",
	TagCurrency:          "currency",
	TagAmount:            "amount",
	TagCountryCode:       "country_code",
	TagMerchantName:      "merchant_name",
	TagMerchantCity:      "merchant_city",
	TagAdditionalData:    "additional_data",
	TagCRC:               "crc",
}

// TagName returns a readable name for a top-level tag, or "tag_XX" for
// tags this package does not emit.
func TagName(tag string) string {
	if name, ok := tagNames[tag]; ok {
		return name
	}
	return "tag_" + tag
}
