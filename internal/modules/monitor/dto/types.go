package dto

type MonitorOutput struct {
	Name         string
	Binary       string
	Enabled      bool
	PollSeconds  int
	Version      string
	Capabilities []string
	Error        string
}
