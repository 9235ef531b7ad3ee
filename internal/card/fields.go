package card

// Raw input fields
const (
	RawName   = "name"
	RawText   = "text"
	RawCost   = "cost"
	RawType   = "type"
	RawQuick  = "quick"
	RawLeader = "leader"
)

// Namespaces used by the pipeline stages
const (
	Prefix       = "card__"
	CostPrefix   = "cost__"
	MarkupPrefix = "markup__"
)

// Per-card fields
const (
	Name        = Prefix + RawName
	Text        = Prefix + RawText
	Cost        = Prefix + RawCost
	Type        = Prefix + RawType
	Quick       = Prefix + RawQuick
	Leader      = Prefix + RawLeader
	ChannelCost = Prefix + "channel_cost"
	Typelist    = Prefix + "typelist"
	Typenames   = Prefix + "typenames"
	Typeline    = Prefix + "typeline"
	Error       = Prefix + "error"
	ErrorCode   = Prefix + "error_code"
)

// Fields derived from the mana cost
const (
	CostInfo       = CostPrefix + "info"
	CostValue      = CostPrefix + "value"
	CostOrder      = CostPrefix + "order"
	CostColors     = CostPrefix + "colors"
	CostNames      = CostPrefix + "names"
	CostFirstColor = CostPrefix + "first_color"
	CostGradient   = CostPrefix + "gradient"
)

// Fields kept by the markup stages
const (
	MarkupSource  = MarkupPrefix + "source"
	MarkupNodes   = MarkupPrefix + "nodes"
	MarkupUnknown = MarkupPrefix + "unknown_keywords"
)
