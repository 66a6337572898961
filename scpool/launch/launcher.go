package launch

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/sjy-dv/scpool/scpool/core"
	"github.com/sjy-dv/scpool/scpool/driver"
	"github.com/sjy-dv/scpool/scpool/driver/grpcconn"
	"github.com/sjy-dv/scpool/scpool/driver/tcp"
	"github.com/sjy-dv/scpool/scpool/pkg/log"
	"github.com/sjy-dv/scpool/scpool/registry"
)

type ScLauncher struct {
	Pools    registry.Accessor
	ErrLogCh chan error
	Target   string
	Probe    time.Duration
	stopCh   chan struct{}
}

type poolConfig struct {
	Target        string
	Driver        string
	Capacity      int
	ReplaceClosed bool
	LockDir       string
	ProbeInterval time.Duration
}

var scLauncher *ScLauncher

func GetScLauncher() *ScLauncher {
	return scLauncher
}

func LoadEnv() *ScLauncher {
	sc := &ScLauncher{}
	sc.setupLogger()
	sc.ErrLogCh = make(chan error, 16)
	sc.stopCh = make(chan struct{})
	sc.Pools = registry.NewAccessor()
	config := &poolConfig{}
	if os.Getenv("POOL_TARGET") == "" {
		config.Target = "127.0.0.1:6727"
	} else {
		config.Target = os.Getenv("POOL_TARGET")
	}
	log.Info(fmt.Sprintf("SCPOOL target %s", config.Target))
	if os.Getenv("POOL_DRIVER") == "" {
		config.Driver = "tcp"
	} else {
		config.Driver = os.Getenv("POOL_DRIVER")
	}
	if os.Getenv("POOL_CAPACITY") == "" {
		config.Capacity = core.DefaultCapacity
	} else {
		n, err := strconv.Atoi(os.Getenv("POOL_CAPACITY"))
		if err != nil || n < 1 {
			log.Info("Failed to Configure Pool Capacity. Set Default Size : ", core.DefaultCapacity)
			config.Capacity = core.DefaultCapacity
		} else {
			config.Capacity = n
		}
	}
	log.Info(fmt.Sprintf("SCPOOL Configure Pool Capacity %d", config.Capacity))
	if os.Getenv("POOL_REPLACE_CLOSED") == "" {
		config.ReplaceClosed = core.DefaultOptions.ReplaceClosed
	} else {
		config.ReplaceClosed = os.Getenv("POOL_REPLACE_CLOSED") == "1"
	}
	if config.ReplaceClosed {
		log.Info("SCPOOL Dead Slot Repair Enabled")
	} else {
		log.Info("SCPOOL Dead Slot Repair Disabled")
	}
	config.LockDir = os.Getenv("POOL_LOCK_DIR")
	if os.Getenv("POOL_PROBE_INTERVAL_MS") == "" {
		config.ProbeInterval = 30 * time.Second
	} else {
		ms, err := strconv.ParseInt(os.Getenv("POOL_PROBE_INTERVAL_MS"), 10, 64)
		if err != nil || ms < 1 {
			log.Info("Failed to Configure Probe Interval. Set Default 30000ms")
			config.ProbeInterval = 30 * time.Second
		} else {
			config.ProbeInterval = time.Duration(ms) * time.Millisecond
		}
	}

	factory, err := buildFactory(config)
	if err != nil {
		log.Warn(fmt.Sprintf("CRITICAL SystemCrashError: %v", err))
		os.Exit(0)
	}
	opts := core.DefaultOptions
	opts.Target = config.Target
	opts.Capacity = config.Capacity
	opts.ReplaceClosed = config.ReplaceClosed
	opts.LockDir = config.LockDir
	pool, err := core.Open(opts, factory)
	if err != nil {
		log.Warn(fmt.Sprintf("CRITICAL SystemCrashError: %v", err))
		os.Exit(0)
	}
	sc.Pools.Save(config.Target, pool)
	sc.Target = config.Target
	sc.Probe = config.ProbeInterval
	sc.ascii(config.Capacity)
	return sc
}

func buildFactory(config *poolConfig) (driver.Factory, error) {
	switch config.Driver {
	case "grpc":
		return grpcconn.NewFactory(config.Target, 3*time.Second)
	default:
		return tcp.NewFactory(tcp.WithTarget(config.Target))
	}
}

func (sc *ScLauncher) LaunchScpoolSystem() {
	log.Info("This System is dependent on ", runtime.Version(), " version.")
	go sc.activeErrorLog()
	go sc.keepWarm()
	scLauncher = sc
}

// Shutdown drains every pool. Outstanding handles must be released first.
func (sc *ScLauncher) Shutdown() error {
	close(sc.stopCh)
	return sc.Pools.CloseAll()
}

func (sc *ScLauncher) setupLogger() {
	if os.Getenv("LOG_LEVEL") == "" {
		log.SetLevel("debug")
	} else {
		log.SetLevel(os.Getenv("LOG_LEVEL"))
	}
}

func (sc *ScLauncher) activeErrorLog() {
	for {
		select {
		case err := <-sc.ErrLogCh:
			if err != nil {
				log.Error(err)
			}
		case <-sc.stopCh:
			return
		}
	}
}

// keepWarm cycles one resource per interval so that dead connections are
// noticed and repaired while the daemon idles.
func (sc *ScLauncher) keepWarm() {
	ticker := time.NewTicker(sc.Probe)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			sc.Pools.FindAsc(func(target string, pool *core.Pool) (bool, error) {
				r, err := pool.Acquire(time.Second)
				if err != nil {
					sc.ErrLogCh <- err
					return true, nil
				}
				if _, err := r.Execute([]byte("ping")); err != nil {
					sc.ErrLogCh <- err
					_ = r.Close()
				}
				if err := pool.Release(r); err != nil {
					sc.ErrLogCh <- err
				}
				stat := pool.Stat()
				log.Debug(fmt.Sprintf("SCPOOL %s available %d/%d", target, stat.Available, stat.Capacity))
				return true, nil
			})
		case <-sc.stopCh:
			return
		}
	}
}

func (sc *ScLauncher) ascii(capacity int) {
	banner := `
	 ___  ___ _ __   ___   ___\ \
	/ __|/ __| '_ \ / _ \ / _ \\ \    SCPOOL (SolidCorePool) v1.0.0
	\__ \ (__| |_) | (_) | (_) |\ \   Target %s
	|___/\___| .__/ \___/ \___/  \_\  Capacity (%d)
	         |_|`
	fmt.Println(fmt.Sprintf(banner, sc.Target, capacity))
}
