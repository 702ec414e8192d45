package categorization

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// categoryKeywords maps each category to the merchant substrings that imply
// it. Checked in Categories order; the first category with any hit wins, so
// overlapping terms (e.g. "reliance") resolve by position.
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{FoodAndDrinks, []string{
		"restaurant", "cafe", "coffee", "pizza", "burger", "food",
		"domino", "mcdonald", "kfc", "subway", "starbucks",
		"swiggy", "zomato", "ubereats", "dining", "kitchen",
		"biryani", "dhaba", "bar", "pub", "drinks",
		"bakery", "tea", "juice", "ice cream", "dunkin",
	}},
	{Groceries, []string{
		"grocery", "supermarket", "blinkit", "bigbasket", "grofers",
		"instamart", "dunzo", "fresh", "vegetables", "fruits",
		"dmart", "reliance fresh", "more megastore", "nature's basket",
		"spencer", "star bazaar", "jiomart",
	}},
	{Shopping, []string{
		"amazon", "flipkart", "myntra", "ajio", "meesho",
		"shop", "store", "mart", "bazaar", "mall", "retail",
		"fashion", "clothing", "electronics", "apparel",
		"furniture", "decor", "snapdeal", "nykaa", "lenskart",
		"vijay sales", "croma", "reliance digital",
	}},
	{Entertainment, []string{
		"netflix", "prime", "hotstar", "spotify", "youtube",
		"movie", "cinema", "theater", "theatre", "pvr", "inox",
		"game", "entertainment", "music", "concert", "event",
		"bookmyshow", "paytm insider", "sony liv", "zee5",
		"disney", "voot", "mx player",
	}},
	{TravelAndTransport, []string{
		"uber", "ola", "rapido", "taxi", "cab", "metro",
		"bus", "train", "flight", "airline", "fuel", "petrol",
		"transport", "travel", "hotel", "resort", "booking",
		"airbnb", "makemytrip", "goibibo", "cleartrip", "irctc",
		"indigo", "spicejet", "vistara", "air india", "diesel",
		"parking", "toll", "oyo",
	}},
	{BillsAndUtilities, []string{
		"electricity", "water", "gas", "bill", "utility",
		"broadband", "internet", "wifi", "recharge", "mobile",
		"airtel", "jio", "vodafone", "bsnl", "tata", "adani",
		"reliance", "postpaid", "prepaid", "tata sky", "dish tv",
		"sun direct", "airtel digital", "dth",
	}},
	{Healthcare, []string{
		"hospital", "clinic", "doctor", "medical", "health",
		"pharmacy", "apollo", "medplus", "netmeds", "1mg",
		"pharmeasy", "medicine", "diagnostic", "lab", "test",
		"fortis", "max", "manipal", "narayana", "dental",
		"physiotherapy", "ayurveda",
	}},
	{Education, []string{
		"education", "school", "college", "university", "course",
		"tuition", "coaching", "udemy", "coursera", "upgrad",
		"byju", "unacademy", "vedantu", "toppr", "book",
		"library", "stationery", "exam", "fees", "admission",
	}},
	{Investments, []string{
		"investment", "mutual fund", "stock", "sip", "insurance",
		"zerodha", "groww", "upstox", "angel", "paytm money",
		"lic", "hdfc life", "icici prudential", "sbi life",
		"policy", "premium", "fd", "fixed deposit", "recurring",
	}},
	{PersonalCare, []string{
		"salon", "spa", "beauty", "parlour", "gym", "fitness",
		"yoga", "massage", "wellness", "hair", "skin",
		"cult.fit", "urban company", "lakme", "vlcc",
		"grooming", "cosmetics", "makeup",
	}},
	{Subscriptions, []string{
		"subscription", "monthly", "annual", "membership",
		"amazon prime", "youtube premium", "linkedin premium",
		"office 365", "adobe", "microsoft", "apple",
		"google one", "icloud", "dropbox", "canva pro",
	}},
}

type keywordMatcher struct {
	category Category
	matcher  *ahocorasick.Matcher
}

var keywordMatchers = buildKeywordMatchers()

func buildKeywordMatchers() []keywordMatcher {
	matchers := make([]keywordMatcher, 0, len(categoryKeywords))
	for _, ck := range categoryKeywords {
		matchers = append(matchers, keywordMatcher{
			category: ck.category,
			matcher:  ahocorasick.NewStringMatcher(ck.keywords),
		})
	}
	return matchers
}

// classifyByKeywords is the deterministic fallback: lowercase substring
// matching against each category's keyword list, first hit wins, "Others"
// when nothing matches.
func classifyByKeywords(merchant string) Category {
	lower := []byte(strings.ToLower(merchant))
	for _, km := range keywordMatchers {
		if len(km.matcher.Match(lower)) > 0 {
			return km.category
		}
	}
	return Others
}
