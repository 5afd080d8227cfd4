package change

// FromCommits runs the C4 conventional-commit pass: parse, filter by scope,
// then contribute changes from footers and from the commit description per
// spec §4.4 steps 1-4.
func FromCommits(messages []string, cfg Config) []Change {
	var changes []Change
	for _, msg := range messages {
		cc, ok := ParseConventionalCommit(msg)
		if !ok {
			continue
		}
		if !cc.MatchesScopes(cfg.Scopes) {
			continue
		}

		hasBreakingFooter := false
		for _, f := range cc.Footers {
			if f.Breaking {
				hasBreakingFooter = true
				changes = append(changes, Change{
					Type:        Breaking(),
					Description: f.Value,
					Source:      FromCommit(cc.Raw),
				})
				continue
			}
			if source, ok := cfg.footerSource(f.Token); ok {
				changes = append(changes, Change{
					Type:        Custom(source),
					Description: f.Value,
					Source:      FromCommit(cc.Raw),
				})
			}
		}

		switch {
		case cc.Breaking && !hasBreakingFooter:
			// The "!" marked the summary itself as the breaking change.
			changes = append(changes, Change{
				Type:        Breaking(),
				Description: cc.Description,
				Source:      FromCommit(cc.Raw),
			})
		case cc.Type == "feat":
			changes = append(changes, Change{
				Type:        Feature(),
				Description: cc.Description,
				Source:      FromCommit(cc.Raw),
			})
		case cc.Type == "fix":
			changes = append(changes, Change{
				Type:        Fix(),
				Description: cc.Description,
				Source:      FromCommit(cc.Raw),
			})
			// chore/docs/etc. contribute nothing from the description;
			// any footer changes collected above still stand.
		}
	}
	return changes
}
