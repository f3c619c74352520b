package signal

func (ctl *WSController) handlePing(p *wsPeer) {
	resp := struct {
		Type string `json:"type"`
	}{
		Type: "pong",
	}
	_ = p.TrySend(resp)
}
