package types

import (
	"github.com/betbot/goalpaca/pkg/schema"
	"github.com/betbot/goalpaca/pkg/schema/tagged"
)

// Watchlist 自选列表
type Watchlist struct {
	schema.Retained
	ID        tagged.UUID
	AccountID tagged.UUID
	CreatedAt tagged.DateTime
	UpdatedAt tagged.DateTime
	Name      string
	Assets    []Asset // 列表接口不返回
}

var watchlistNameRule = schema.MinLen(schema.String(), 1)

var WatchlistSchema = schema.MustDefine("Watchlist",
	schema.Field("id", tagged.UUIDRule(), func(w *Watchlist, v tagged.UUID) { w.ID = v }),
	schema.Field("account_id", tagged.UUIDRule(), func(w *Watchlist, v tagged.UUID) { w.AccountID = v }),
	schema.Field("created_at", tagged.DateTimeRule(), func(w *Watchlist, v tagged.DateTime) { w.CreatedAt = v }),
	schema.Field("updated_at", tagged.DateTimeRule(), func(w *Watchlist, v tagged.DateTime) { w.UpdatedAt = v }),
	schema.Field("name", watchlistNameRule, func(w *Watchlist, v string) { w.Name = v }),
	schema.Field("assets", schema.Optional(schema.ArrayOf[Asset](AssetSchema)), func(w *Watchlist, v *[]Asset) { w.Assets = deref(v) }),
)

// CreateWatchlistRequest POST /v2/watchlists 请求体
type CreateWatchlistRequest struct {
	Name    string   `json:"name"`
	Symbols []string `json:"symbols"`
}

var CreateWatchlistRequestSchema = schema.MustDefine("CreateWatchlistRequest",
	schema.Field("name", watchlistNameRule, func(r *CreateWatchlistRequest, v string) { r.Name = v }),
	schema.Field("symbols", schema.Optional(schema.ArrayOf(schema.MinLen(schema.String(), 1))), func(r *CreateWatchlistRequest, v *[]string) { r.Symbols = deref(v) }),
)

// UpdateWatchlistRequest PUT /v2/watchlists/{id} 请求体；Symbols 整体替换原列表
type UpdateWatchlistRequest struct {
	Name    string   `json:"name,omitempty"`
	Symbols []string `json:"symbols,omitempty"`
}

var UpdateWatchlistRequestSchema = schema.MustDefine("UpdateWatchlistRequest",
	schema.Field("name", schema.Optional(watchlistNameRule), func(r *UpdateWatchlistRequest, v *string) { r.Name = deref(v) }),
	schema.Field("symbols", schema.Optional(schema.ArrayOf(schema.MinLen(schema.String(), 1))), func(r *UpdateWatchlistRequest, v *[]string) { r.Symbols = deref(v) }),
)

// AddSymbolRequest POST /v2/watchlists/{id} 请求体
type AddSymbolRequest struct {
	Symbol string `json:"symbol"`
}

var AddSymbolRequestSchema = schema.MustDefine("AddSymbolRequest",
	schema.Field("symbol", schema.MinLen(schema.String(), 1), func(r *AddSymbolRequest, v string) { r.Symbol = v }),
)

// WatchlistNameQuery v2/watchlists:by_name 查询参数
type WatchlistNameQuery struct {
	Name string `query:"name"`
}

var WatchlistNameQuerySchema = schema.MustDefine("WatchlistNameQuery",
	schema.Field("name", watchlistNameRule, func(q *WatchlistNameQuery, v string) { q.Name = v }),
)
