package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/MixinNetwork/launchpad/chain"
	"github.com/MixinNetwork/launchpad/voting"
	"github.com/gin-gonic/gin"
)

func (s *Server) launchpadCollections(c *gin.Context) {
	count, err := s.rt.LaunchpadCollections()
	s.render(c, gin.H{"count": count, "block": s.rt.Block()}, err)
}

func (s *Server) collection(c *gin.Context) {
	id, ok := paramUint32(c, "id")
	if !ok {
		return
	}
	info, err := s.rt.Collection(id)
	if err == nil && info == nil {
		err = fmt.Errorf("collection %d: %w", id, chain.ErrNotFound)
	}
	if err != nil {
		s.render(c, nil, err)
		return
	}
	s.render(c, gin.H{
		"id":             info.ID,
		"owner":          info.Owner,
		"name":           info.Name,
		"description":    info.Description,
		"items_capacity": info.ItemsCapacity,
		"items_minted":   info.ItemsMinted,
		"is_frozen":      info.IsFrozen,
		"status":         info.StatusName(),
		"mint_fee":       info.MintFee,
		"start_date":     info.StartDate,
		"end_date":       info.EndDate,
	}, nil)
}

func (s *Server) items(c *gin.Context) {
	id, ok := paramUint32(c, "id")
	if !ok {
		return
	}
	items, err := s.rt.Items(id)
	s.render(c, items, err)
}

func (s *Server) fund(c *gin.Context) {
	index, ok := paramUint32(c, "index")
	if !ok {
		return
	}
	info, err := s.rt.Fund(index)
	if err == nil && info == nil {
		err = fmt.Errorf("fund %d: %w", index, chain.ErrNotFound)
	}
	s.render(c, info, err)
}

func (s *Server) balance(c *gin.Context) {
	account := c.Param("id")
	if err := chain.ValidateAccount(account); err != nil {
		s.render(c, nil, err)
		return
	}
	balance, err := s.rt.Balance(account)
	s.render(c, gin.H{"account": account, "balance": balance}, err)
}

func (s *Server) proposalIDs(c *gin.Context) {
	ids, err := s.rt.ProposalIDs()
	if ids == nil {
		ids = []voting.ProposalID{}
	}
	s.render(c, ids, err)
}

func (s *Server) proposal(c *gin.Context) {
	id := c.Param("id")
	p, err := s.rt.Proposal(id)
	if err == nil && p == nil {
		err = fmt.Errorf("proposal %s: %w", id, chain.ErrNotFound)
	}
	if err != nil {
		s.render(c, nil, err)
		return
	}
	votes, err := s.rt.Votes(id)
	if err != nil {
		s.render(c, nil, err)
		return
	}
	tally, err := s.rt.Tally(id)
	s.render(c, gin.H{"proposal": p, "votes": votes, "tally": tally}, err)
}

func (s *Server) events(c *gin.Context) {
	number, err := strconv.ParseUint(c.Param("number"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "bad number"})
		return
	}
	events, err := s.rt.Events(number)
	if events == nil {
		events = []*chain.Event{}
	}
	s.render(c, events, err)
}

const (
	defaultEventsLimit = 100
	maxEventsLimit     = 1000
)

func (s *Server) searchEvents(c *gin.Context) {
	limit := defaultEventsLimit
	if l := c.Query("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n <= 0 || n > maxEventsLimit {
			c.JSON(http.StatusBadRequest, gin.H{"err": "bad limit"})
			return
		}
		limit = n
	}
	events, err := s.archive.ListEvents(c.Request.Context(), c.Query("module"), c.Query("name"), c.Query("account"), limit)
	s.render(c, events, err)
}
