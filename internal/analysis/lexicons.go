package analysis

// Curated word lists backing the lexical heuristics. They are plain data
// tables so thresholds and vocabularies stay unit-testable independent of the
// extraction logic, and swappable without touching it.

// jargonLexicon is the domain vocabulary used for the jargon frequency signal.
// Skewed toward the crypto/web3 marketing space the product targets.
var jargonLexicon = map[string]bool{
	"airdrop":        true,
	"alpha":          true,
	"bearish":        true,
	"bullish":        true,
	"dao":            true,
	"defi":           true,
	"degen":          true,
	"dex":            true,
	"fomo":           true,
	"fud":            true,
	"gm":             true,
	"hodl":           true,
	"layer2":         true,
	"liquidity":      true,
	"mainnet":        true,
	"mint":           true,
	"nft":            true,
	"onchain":        true,
	"protocol":       true,
	"rekt":           true,
	"roadmap":        true,
	"rollup":         true,
	"staking":        true,
	"testnet":        true,
	"tokenomics":     true,
	"tvl":            true,
	"validator":      true,
	"wagmi":          true,
	"whitepaper":     true,
	"yield":          true,
	"zk":             true,
	"composable":     true,
	"permissionless": true,
	"trustless":      true,
}

// hedgingLexicon marks uncertain, qualified language
var hedgingLexicon = map[string]bool{
	"apparently": true,
	"arguably":   true,
	"basically":  true,
	"could":      true,
	"fairly":     true,
	"kinda":      true,
	"likely":     true,
	"may":        true,
	"maybe":      true,
	"might":      true,
	"perhaps":    true,
	"possibly":   true,
	"probably":   true,
	"roughly":    true,
	"seemingly":  true,
	"seems":      true,
	"somewhat":   true,
	"sorta":      true,
	"supposedly": true,
}

// convictionLexicon marks strong, committed language
var convictionLexicon = map[string]bool{
	"absolutely":     true,
	"always":         true,
	"certainly":      true,
	"clearly":        true,
	"definitely":     true,
	"every":          true,
	"guaranteed":     true,
	"must":           true,
	"never":          true,
	"obviously":      true,
	"proven":         true,
	"undeniably":     true,
	"undoubtedly":    true,
	"unquestionably": true,
	"will":           true,
}

// profanityLexicon backs the profanity level bucketing
var profanityLexicon = map[string]bool{
	"ass":      true,
	"asshole":  true,
	"bastard":  true,
	"bitch":    true,
	"bullshit": true,
	"crap":     true,
	"damn":     true,
	"fuck":     true,
	"fucked":   true,
	"fucking":  true,
	"piss":     true,
	"shit":     true,
	"shitty":   true,
}

// positiveLexicon / negativeLexicon back the bag-of-words polarity score
var positiveLexicon = map[string]bool{
	"amazing":    true,
	"awesome":    true,
	"beautiful":  true,
	"best":       true,
	"brilliant":  true,
	"excellent":  true,
	"excited":    true,
	"fantastic":  true,
	"glad":       true,
	"good":       true,
	"great":      true,
	"happy":      true,
	"huge":       true,
	"impressive": true,
	"incredible": true,
	"love":       true,
	"loved":      true,
	"perfect":    true,
	"proud":      true,
	"strong":     true,
	"success":    true,
	"thrilled":   true,
	"win":        true,
	"winning":    true,
	"wonderful":  true,
}

var negativeLexicon = map[string]bool{
	"angry":        true,
	"awful":        true,
	"bad":          true,
	"broken":       true,
	"disappointed": true,
	"disaster":     true,
	"fail":         true,
	"failed":       true,
	"failure":      true,
	"hate":         true,
	"horrible":     true,
	"lose":         true,
	"losing":       true,
	"loss":         true,
	"problem":      true,
	"sad":          true,
	"scam":         true,
	"terrible":     true,
	"ugly":         true,
	"weak":         true,
	"worst":        true,
	"wrong":        true,
}

// ecosystemKeywords maps frequent-mention keywords to ecosystem cluster tags
var ecosystemKeywords = map[string]string{
	"bitcoin":  "bitcoin",
	"btc":      "bitcoin",
	"eth":      "ethereum",
	"ethereum": "ethereum",
	"evm":      "ethereum",
	"sol":      "solana",
	"solana":   "solana",
	"base":     "base",
	"arbitrum": "arbitrum",
	"optimism": "optimism",
	"polygon":  "polygon",
	"defi":     "defi",
	"nft":      "nft",
}

// stopwords are high-frequency function words excluded from topic scoring
var stopwords = map[string]bool{
	"about": true,
	"after": true,
	"all":   true,
	"and":   true,
	"any":   true,
	"are":   true,
	"been":  true,
	"but":   true,
	"can":   true,
	"for":   true,
	"from":  true,
	"get":   true,
	"had":   true,
	"has":   true,
	"have":  true,
	"her":   true,
	"his":   true,
	"how":   true,
	"into":  true,
	"its":   true,
	"just":  true,
	"more":  true,
	"not":   true,
	"now":   true,
	"one":   true,
	"our":   true,
	"out":   true,
	"over":  true,
	"she":   true,
	"that":  true,
	"the":   true,
	"their": true,
	"them":  true,
	"then":  true,
	"there": true,
	"they":  true,
	"this":  true,
	"was":   true,
	"were":  true,
	"what":  true,
	"when":  true,
	"where": true,
	"which": true,
	"who":   true,
	"will":  true,
	"with":  true,
	"would": true,
	"you":   true,
	"your":  true,
}
