package runtime

import (
	"fmt"
	"os"

	"github.com/MixinNetwork/launchpad/chain"
	"github.com/MixinNetwork/launchpad/nft"
	"github.com/MixinNetwork/launchpad/voting"
	"github.com/pelletier/go-toml"
	"github.com/shopspring/decimal"
)

type Endowment struct {
	Account string `toml:"account"`
	Amount  string `toml:"amount"`
}

type CollectionConfiguration struct {
	SubmissionDeposit string   `toml:"submission-deposit"`
	FundHorizon       uint64   `toml:"fund-horizon"`
	IDMode            string   `toml:"id-mode"`
	MaxStringLength   int      `toml:"max-string-length"`
	Seed              string   `toml:"seed"`
	Images            []string `toml:"images"`
}

type VotingConfiguration struct {
	MaxProposal     int   `toml:"max-proposal"`
	MaxVoter        int   `toml:"max-voter"`
	MaxStringLength int   `toml:"max-string-length"`
	Threshold       uint8 `toml:"threshold"`
	UniqueVotes     bool  `toml:"unique-votes"`
	CollectionGate  bool  `toml:"collection-gate"`
}

type Configuration struct {
	Collection CollectionConfiguration `toml:"collection"`
	Voting     VotingConfiguration     `toml:"voting"`
	Genesis    struct {
		Endowments []Endowment `toml:"endowments"`
	} `toml:"genesis"`
}

func DefaultConfiguration() *Configuration {
	return &Configuration{
		Collection: CollectionConfiguration{
			SubmissionDeposit: "1",
			FundHorizon:       14400,
			IDMode:            nft.IDModeCounter,
			MaxStringLength:   256,
			Seed:              "launchpad",
		},
		Voting: VotingConfiguration{
			MaxProposal:     1024,
			MaxVoter:        1024,
			MaxStringLength: 256,
			Threshold:       50,
		},
	}
}

// Setup reads the TOML file at path. Settings the file leaves out take
// their default values.
func Setup(path string) (*Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tree, err := toml.LoadBytes(data)
	if err != nil {
		return nil, err
	}
	var conf Configuration
	err = tree.Unmarshal(&conf)
	if err != nil {
		return nil, err
	}
	conf.fillDefaults()
	if !tree.Has("voting.threshold") {
		conf.Voting.Threshold = DefaultConfiguration().Voting.Threshold
	}
	return &conf, conf.Validate()
}

func (conf *Configuration) fillDefaults() {
	def := DefaultConfiguration()
	c, d := &conf.Collection, def.Collection
	if c.SubmissionDeposit == "" {
		c.SubmissionDeposit = d.SubmissionDeposit
	}
	if c.FundHorizon == 0 {
		c.FundHorizon = d.FundHorizon
	}
	if c.IDMode == "" {
		c.IDMode = d.IDMode
	}
	if c.MaxStringLength == 0 {
		c.MaxStringLength = d.MaxStringLength
	}
	if c.Seed == "" {
		c.Seed = d.Seed
	}
	v, dv := &conf.Voting, def.Voting
	if v.MaxProposal == 0 {
		v.MaxProposal = dv.MaxProposal
	}
	if v.MaxVoter == 0 {
		v.MaxVoter = dv.MaxVoter
	}
	if v.MaxStringLength == 0 {
		v.MaxStringLength = dv.MaxStringLength
	}
}

func (conf *Configuration) Validate() error {
	if _, err := chain.ParseBalance(conf.Collection.SubmissionDeposit); err != nil {
		return fmt.Errorf("submission-deposit: %w", err)
	}
	switch conf.Collection.IDMode {
	case nft.IDModeCounter, nft.IDModeNameHash:
	default:
		return fmt.Errorf("invalid id-mode %q: %w", conf.Collection.IDMode, chain.ErrInvalidArgument)
	}
	if conf.Voting.Threshold > 100 {
		return fmt.Errorf("invalid threshold %d: %w", conf.Voting.Threshold, chain.ErrInvalidArgument)
	}
	for _, e := range conf.Genesis.Endowments {
		if err := chain.ValidateAccount(e.Account); err != nil {
			return err
		}
		if _, err := chain.ParseBalance(e.Amount); err != nil {
			return fmt.Errorf("endowment %s: %w", e.Account, err)
		}
	}
	return nil
}

func (conf *Configuration) deposit() decimal.Decimal {
	return chain.MustBalance(conf.Collection.SubmissionDeposit)
}

func (conf *Configuration) nftParams() nft.Params {
	return nft.Params{
		IDMode:          conf.Collection.IDMode,
		MaxStringLength: conf.Collection.MaxStringLength,
		FundHorizon:     conf.Collection.FundHorizon,
		Images:          conf.Collection.Images,
	}
}

func (conf *Configuration) votingParams() voting.Params {
	return voting.Params{
		MaxProposal:     conf.Voting.MaxProposal,
		MaxVoter:        conf.Voting.MaxVoter,
		MaxStringLength: conf.Voting.MaxStringLength,
		Threshold:       conf.Voting.Threshold,
		UniqueVotes:     conf.Voting.UniqueVotes,
		CollectionGate:  conf.Voting.CollectionGate,
	}
}
