package main

type showCmd struct{}

func (cmd *showCmd) Run(g *Globals) error {
	cfg, _, err := g.load()
	if err != nil {
		return err
	}
	data, err := cfg.Redacted().YAML()
	if err != nil {
		return err
	}
	_, err = g.stdout().Write(data)
	return err
}
