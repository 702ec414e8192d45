package extraction

import "regexp"

// rule pairs an amount pattern with a merchant pattern. Rules are tried in
// order; the first one that yields both fields wins.
type rule struct {
	name     string
	amount   *regexp.Regexp
	merchant *regexp.Regexp
}

var rules = []rule{
	// "Rs. 450 spent at Domino's" or "₹450 spent at Amazon"
	{
		name:     "spent_at",
		amount:   regexp.MustCompile(`(?i)(?:Rs\.?\s*|₹|Rupees\s+)\s*(\d+(?:,\d+)*(?:\.\d{2})?)`),
		merchant: regexp.MustCompile(`(?i)(?:spent at|paid to|at)\s+([A-Za-z0-9\s&'-]+?)(?:\s+(?:at|on|dated)|\.|$)`),
	},
	// "₹1299 debited to Amazon" or "Rs 1299 debited to Flipkart"
	{
		name:     "debited_to",
		amount:   regexp.MustCompile(`(?i)(?:Rs\.?\s*|₹|Rupees\s+)\s*(\d+(?:,\d+)*(?:\.\d{2})?)`),
		merchant: regexp.MustCompile(`(?i)(?:debited to|credited to|to)\s+([A-Za-z0-9\s&'-]+?)(?:\s+(?:at|on|dated)|\.|$)`),
	},
	// "sent 100 Rupees to Domino's" or "sent Rs 100 to Amazon"
	{
		name:     "sent_to",
		amount:   regexp.MustCompile(`(?i)(?:sent|transferred)\s+(?:Rs\.?\s*|₹|Rupees\s+)?\s*(\d+(?:,\d+)*(?:\.\d{2})?)\s+(?:Rs\.?|₹|Rupees)?`),
		merchant: regexp.MustCompile(`(?i)(?:to|at)\s+([A-Za-z0-9\s&'-]+?)(?:\s+(?:at|on|dated)|\.|$)`),
	},
	// "Amount: ₹180 Payment to Uber"
	{
		name:     "amount_payment",
		amount:   regexp.MustCompile(`(?i)(?:Amount|Amt)[:\s]*(?:Rs\.?\s*|₹|Rupees\s+)\s*(\d+(?:,\d+)*(?:\.\d{2})?)`),
		merchant: regexp.MustCompile(`(?i)(?:payment to|paid to)\s+([A-Za-z0-9\s&'-]+?)(?:\s+(?:at|on|dated)|\.|$)`),
	},
	// "₹649 to Netflix" or "Rs 649 at Starbucks"
	{
		name:     "simple_to_at",
		amount:   regexp.MustCompile(`(?i)(?:Rs\.?\s*|₹|Rupees\s+)\s*(\d+(?:,\d+)*(?:\.\d{2})?)`),
		merchant: regexp.MustCompile(`(?i)(?:to|at|from)\s+([A-Za-z0-9\s&'-]+?)(?:\s+(?:at|on|dated)|\.|$)`),
	},
	// "Transaction of Rs 500 at Dominos" or "Payment of ₹1200 to Amazon"
	{
		name:     "transaction_of",
		amount:   regexp.MustCompile(`(?i)(?:transaction|payment)\s+of\s+(?:Rs\.?\s*|₹|Rupees\s+)\s*(\d+(?:,\d+)*(?:\.\d{2})?)`),
		merchant: regexp.MustCompile(`(?i)(?:at|to|from)\s+([A-Za-z0-9\s&'-]+?)(?:\s+(?:at|on|dated)|\.|$)`),
	},
	// Generic rupee amount with a capitalized merchant nearby.
	{
		name:     "generic",
		amount:   regexp.MustCompile(`(?i)(?:Rs\.?\s*|₹|Rupees\s+)\s*(\d+(?:,\d+)*(?:\.\d{2})?)`),
		merchant: regexp.MustCompile(`(?i)([A-Z][A-Za-z0-9\s&'-]{2,30}?)(?:\s+(?:on|dated|transaction|at)|\.|$)`),
	},
}
