package api

import (
	"fmt"
	"net/http"

	"github.com/MixinNetwork/launchpad/chain"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// Extrinsic is the body of a submitted call. Each call reads the fields it
// needs and ignores the rest.
type Extrinsic struct {
	Origin      string          `json:"origin" binding:"required"`
	Collection  uint32          `json:"collection"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Capacity    uint16          `json:"capacity"`
	Amount      decimal.Decimal `json:"amount"`
	Start       uint32          `json:"start"`
	End         uint32          `json:"end"`
	Proposal    string          `json:"proposal"`
	Asset       string          `json:"asset"`
	Class       uint32          `json:"class"`
	Instance    uint32          `json:"instance"`
	Wallet      string          `json:"wallet"`
	Title       string          `json:"title"`
	ExpiredAt   uint64          `json:"expired_at"`
	Accepted    bool            `json:"accepted"`
}

func (s *Server) submit(c *gin.Context) {
	var ex Extrinsic
	if err := c.ShouldBindJSON(&ex); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	ctx := c.Request.Context()
	rt := s.rt
	var data any
	var err error
	switch call := c.Param("call"); call {
	case "register_collection":
		data, err = rt.RegisterCollection(ctx, ex.Origin, ex.Name, ex.Description, ex.Capacity, ex.Amount)
	case "approve_collection":
		err = rt.ApproveCollection(ctx, ex.Origin, ex.Collection, ex.Start, ex.End)
	case "mint":
		data, err = rt.Mint(ctx, ex.Origin, ex.Collection)
	case "dispense_fund":
		data, err = rt.DispenseFund(ctx, ex.Origin, ex.Collection)
	case "bind_asset_to_nft":
		err = rt.BindAssetToNFT(ctx, ex.Origin, ex.Asset, ex.Class)
	case "create_proposal":
		err = rt.CreateProposal(ctx, ex.Origin, ex.Proposal, ex.Collection, ex.Asset, ex.Amount, ex.Wallet, ex.Title, ex.Description, ex.ExpiredAt)
	case "vote":
		err = rt.Vote(ctx, ex.Origin, ex.Proposal, ex.Accepted, ex.Class, ex.Instance)
	case "execute":
		err = rt.Execute(ctx, ex.Origin, ex.Proposal)
	default:
		err = fmt.Errorf("unknown call %s: %w", call, chain.ErrInvalidArgument)
	}
	s.render(c, gin.H{"block": rt.Block(), "result": data}, err)
}
