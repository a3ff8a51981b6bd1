package pricing

import "github.com/shopspring/decimal"

type Channel string

const (
	ChannelOffline Channel = "offline"
	ChannelGrab    Channel = "grab"
	ChannelShopee  Channel = "shopee"
)

// ChannelSpec holds the fixed attributes of a sales channel.
type ChannelSpec struct {
	Title           string
	PlatformFeeRate decimal.Decimal // fraction of the selling price
	RoundingStep    decimal.Decimal // price increment, in đ
}

var channelSpecs = map[Channel]ChannelSpec{
	ChannelOffline: {
		Title:           "Offline",
		PlatformFeeRate: decimal.Zero,
		RoundingStep:    decimal.NewFromInt(1000),
	},
	ChannelGrab: {
		Title:           "Grab",
		PlatformFeeRate: decimal.RequireFromString("0.25"),
		RoundingStep:    decimal.NewFromInt(500),
	},
	ChannelShopee: {
		Title:           "Shopee",
		PlatformFeeRate: decimal.RequireFromString("0.15"),
		RoundingStep:    decimal.NewFromInt(500),
	},
}

// Channels returns every channel in display order.
func Channels() []Channel {
	return []Channel{ChannelOffline, ChannelGrab, ChannelShopee}
}

func SpecFor(c Channel) (ChannelSpec, bool) {
	spec, ok := channelSpecs[c]
	return spec, ok
}

func (c Channel) Valid() bool {
	_, ok := channelSpecs[c]
	return ok
}

func (c Channel) String() string {
	return string(c)
}
