package store

// Domain identifies one independently-updating slice of dashboard state.
type Domain string

// Domains owned by the two dashboard modules.
const (
	DomainHFTStats      Domain = "hft.stats"
	DomainWallets       Domain = "hft.wallets"
	DomainMarkets       Domain = "hft.markets"
	DomainSignals       Domain = "hft.signals"
	DomainAlerts        Domain = "insider.alerts"
	DomainSavedWallets  Domain = "insider.saved"
	DomainInsiderStats  Domain = "insider.stats"
	DomainTriggerConfig Domain = "insider.config"
)

// ChangeFunc is invoked synchronously after every store mutation.
type ChangeFunc func(Domain)

// Stores bundles every domain store. All mutations must happen on the
// runtime task loop; there is no locking because there is no parallelism,
// only interleaved asynchronous completions.
type Stores struct {
	Wallets       *WalletStore
	Markets       *MarketStore
	Signals       *SignalStore
	HFTStats      *ScannerStatsStore
	Alerts        *AlertStore
	SavedWallets  *SavedWalletStore
	InsiderStats  *InsiderStatsStore
	TriggerConfig *TriggerConfigStore
}

// New creates the full store set. changed may be nil.
func New(changed ChangeFunc) *Stores {
	notify := func(d Domain) {
		if changed != nil {
			changed(d)
		}
	}
	return &Stores{
		Wallets:       &WalletStore{byAddr: make(map[string]Wallet), changed: notify},
		Markets:       &MarketStore{changed: notify},
		Signals:       &SignalStore{capacity: SignalCapacity, changed: notify},
		HFTStats:      &ScannerStatsStore{changed: notify},
		Alerts:        &AlertStore{changed: notify},
		SavedWallets:  &SavedWalletStore{changed: notify},
		InsiderStats:  &InsiderStatsStore{changed: notify},
		TriggerConfig: &TriggerConfigStore{changed: notify},
	}
}

// WalletStore holds hft wallets keyed by address, preserving snapshot
// order for display.
type WalletStore struct {
	order   []string
	byAddr  map[string]Wallet
	changed ChangeFunc
}

// ReplaceAll atomically replaces the full wallet set in the given order.
func (s *WalletStore) ReplaceAll(wallets []Wallet) {
	s.order = make([]string, 0, len(wallets))
	s.byAddr = make(map[string]Wallet, len(wallets))
	for _, w := range wallets {
		if _, dup := s.byAddr[w.Address]; !dup {
			s.order = append(s.order, w.Address)
		}
		s.byAddr[w.Address] = w
	}
	s.changed(DomainWallets)
}

// Upsert inserts or overwrites a wallet by address. New wallets append to
// the display order.
func (s *WalletStore) Upsert(w Wallet) {
	if _, ok := s.byAddr[w.Address]; !ok {
		s.order = append(s.order, w.Address)
	}
	s.byAddr[w.Address] = w
	s.changed(DomainWallets)
}

// Remove deletes a wallet by address. Unknown addresses are a no-op.
func (s *WalletStore) Remove(address string) {
	if _, ok := s.byAddr[address]; !ok {
		return
	}
	delete(s.byAddr, address)
	for i, addr := range s.order {
		if addr == address {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.changed(DomainWallets)
}

// Get returns the wallet for an address.
func (s *WalletStore) Get(address string) (Wallet, bool) {
	w, ok := s.byAddr[address]
	return w, ok
}

// List returns the wallets in display order.
func (s *WalletStore) List() []Wallet {
	out := make([]Wallet, 0, len(s.order))
	for _, addr := range s.order {
		out = append(out, s.byAddr[addr])
	}
	return out
}

// Len reports the number of stored wallets.
func (s *WalletStore) Len() int { return len(s.byAddr) }

// MarketStore holds the latest market snapshot as a replaceable ordered
// sequence; markets have no stable client-side key.
type MarketStore struct {
	markets []Market
	changed ChangeFunc
}

// ReplaceAll swaps in a full market snapshot.
func (s *MarketStore) ReplaceAll(markets []Market) {
	s.markets = append([]Market(nil), markets...)
	s.changed(DomainMarkets)
}

// List returns the markets in snapshot order.
func (s *MarketStore) List() []Market {
	return append([]Market(nil), s.markets...)
}

// SignalStore is a bounded newest-first ring of trade signals.
type SignalStore struct {
	signals  []Signal
	capacity int
	changed  ChangeFunc
}

// ReplaceAll swaps in a signal snapshot, truncated to capacity.
func (s *SignalStore) ReplaceAll(signals []Signal) {
	s.signals = append([]Signal(nil), signals...)
	if len(s.signals) > s.capacity {
		s.signals = s.signals[:s.capacity]
	}
	s.changed(DomainSignals)
}

// Prepend inserts a signal at the head and evicts from the tail beyond
// capacity.
func (s *SignalStore) Prepend(sig Signal) {
	s.signals = append([]Signal{sig}, s.signals...)
	if len(s.signals) > s.capacity {
		s.signals = s.signals[:s.capacity]
	}
	s.changed(DomainSignals)
}

// List returns the retained signals, newest first.
func (s *SignalStore) List() []Signal {
	return append([]Signal(nil), s.signals...)
}

// Len reports the number of retained signals.
func (s *SignalStore) Len() int { return len(s.signals) }

// ScannerStatsStore holds the hft singleton stats bundle. A nil value
// means the stats were never loaded.
type ScannerStatsStore struct {
	stats   *ScannerStats
	changed ChangeFunc
}

// Replace swaps in a fresh stats bundle from the server.
func (s *ScannerStatsStore) Replace(stats ScannerStats) {
	s.stats = &stats
	s.changed(DomainHFTStats)
}

// SetRunning updates only the running flag, creating an otherwise-zero
// bundle if stats were never loaded. Used by status push events, which do
// not carry counters.
func (s *ScannerStatsStore) SetRunning(running bool) {
	if s.stats == nil {
		s.stats = &ScannerStats{}
	}
	s.stats.Running = running
	s.changed(DomainHFTStats)
}

// Get returns a copy of the stats, or nil if never loaded.
func (s *ScannerStatsStore) Get() *ScannerStats {
	if s.stats == nil {
		return nil
	}
	cp := *s.stats
	return &cp
}

// AlertStore holds the insider alert feed as served; ordering and filters
// are server-defined, so the feed is only ever replaced wholesale.
type AlertStore struct {
	alerts  []Alert
	changed ChangeFunc
}

// ReplaceAll swaps in a full alert snapshot.
func (s *AlertStore) ReplaceAll(alerts []Alert) {
	s.alerts = append([]Alert(nil), alerts...)
	s.changed(DomainAlerts)
}

// List returns the alerts in server order.
func (s *AlertStore) List() []Alert {
	return append([]Alert(nil), s.alerts...)
}

// SavedWalletStore holds insider saved wallets in snapshot order.
type SavedWalletStore struct {
	wallets []SavedWallet
	changed ChangeFunc
}

// ReplaceAll swaps in a full saved-wallet snapshot.
func (s *SavedWalletStore) ReplaceAll(wallets []SavedWallet) {
	s.wallets = append([]SavedWallet(nil), wallets...)
	s.changed(DomainSavedWallets)
}

// Remove deletes a saved wallet by address.
func (s *SavedWalletStore) Remove(address string) {
	for i, w := range s.wallets {
		if w.Address == address {
			s.wallets = append(s.wallets[:i], s.wallets[i+1:]...)
			s.changed(DomainSavedWallets)
			return
		}
	}
}

// List returns the saved wallets in snapshot order.
func (s *SavedWalletStore) List() []SavedWallet {
	return append([]SavedWallet(nil), s.wallets...)
}

// InsiderStatsStore holds the insider singleton stats bundle.
type InsiderStatsStore struct {
	stats   *InsiderStats
	changed ChangeFunc
}

// Replace swaps in a fresh stats bundle from the server.
func (s *InsiderStatsStore) Replace(stats InsiderStats) {
	s.stats = &stats
	s.changed(DomainInsiderStats)
}

// SetRunning updates only the running flag.
func (s *InsiderStatsStore) SetRunning(running bool) {
	if s.stats == nil {
		s.stats = &InsiderStats{}
	}
	s.stats.Running = running
	s.changed(DomainInsiderStats)
}

// Get returns a copy of the stats, or nil if never loaded.
func (s *InsiderStatsStore) Get() *InsiderStats {
	if s.stats == nil {
		return nil
	}
	cp := *s.stats
	return &cp
}

// TriggerConfigStore holds the insider trigger configuration value object.
type TriggerConfigStore struct {
	cfg     *TriggerConfig
	changed ChangeFunc
}

// Replace swaps in the configuration loaded from the server.
func (s *TriggerConfigStore) Replace(cfg TriggerConfig) {
	cp := cfg
	cp.Categories = append([]string(nil), cfg.Categories...)
	s.cfg = &cp
	s.changed(DomainTriggerConfig)
}

// Get returns a copy of the configuration, or nil if never loaded.
func (s *TriggerConfigStore) Get() *TriggerConfig {
	if s.cfg == nil {
		return nil
	}
	cp := *s.cfg
	cp.Categories = append([]string(nil), s.cfg.Categories...)
	return &cp
}
