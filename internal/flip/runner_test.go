package flip_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/flipdeck/flipdeck/internal/flip"
)

var _ = Describe("Runner", func() {
	var (
		cancel context.CancelFunc
		runner *flip.Runner
		errs   chan error
	)

	BeforeEach(func() {
		cfg := flip.DefaultConfig()
		cfg.Duration = 80 * time.Millisecond
		ctrl, err := flip.New(cfg)
		Expect(err).NotTo(HaveOccurred())

		runner = flip.NewRunner(ctrl, 5*time.Millisecond)

		var ctx context.Context
		ctx, cancel = context.WithCancel(context.Background())
		errs = make(chan error, 1)
		go func() { errs <- runner.Run(ctx) }()
	})

	AfterEach(func() {
		cancel()
		Eventually(errs).Should(Receive(MatchError(context.Canceled)))
	})

	It("completes a requested flip on wall-clock ticks", func() {
		done := runner.Flip()
		Eventually(done, "2s", "10ms").Should(BeClosed())

		fr, st := runner.Snapshot()
		Expect(fr.Face).To(Equal(flip.Back))
		Expect(st.Flips).To(Equal(1))
		Expect(st.Published).To(BeNumerically(">", 1))
	})

	It("hands concurrent callers one completion per transition", func() {
		first := runner.Flip()
		second := runner.Flip()
		Expect(second).To(Equal(first))

		Eventually(first, "2s", "10ms").Should(BeClosed())
		_, st := runner.Snapshot()
		Expect(st.Flips).To(Equal(1))
		Expect(st.Dropped).To(Equal(1))
	})

	It("streams frames while animating", func() {
		frames := runner.Frames()

		var fr flip.Frame
		Eventually(frames).Should(Receive(&fr))
		Expect(fr.Face).To(Equal(flip.Front))
		Expect(fr.Progress).To(BeZero())

		runner.Flip()
		Eventually(frames, "2s", "5ms").Should(Receive(WithTransform(
			func(f flip.Frame) float64 { return f.Progress },
			BeNumerically(">", 0))))
	})

	It("returns home after two flips", func() {
		Eventually(runner.Flip(), "2s", "10ms").Should(BeClosed())
		Eventually(runner.Flip(), "2s", "10ms").Should(BeClosed())

		fr, st := runner.Snapshot()
		Expect(st.Flips).To(Equal(2))
		Expect(fr.Face).To(Equal(flip.Front))
	})

	It("answers requests arriving after shutdown", func() {
		Eventually(runner.Flip(), "2s", "10ms").Should(BeClosed())

		cancel()
		Eventually(errs).Should(Receive(MatchError(context.Canceled)))
		// rearm for AfterEach
		errs <- context.Canceled

		Expect(runner.Flip()).To(BeClosed())
		fr, st := runner.Snapshot()
		Expect(fr.Face).To(Equal(flip.Back))
		Expect(st.Flips).To(Equal(1))
	})
})
