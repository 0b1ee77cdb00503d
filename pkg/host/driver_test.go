package host

import (
	"errors"
	"log/slog"

	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Manu343726/bodypatch/pkg/il"
	"github.com/Manu343726/bodypatch/pkg/il/instructions"
	"github.com/Manu343726/bodypatch/pkg/logging"
	"github.com/Manu343726/bodypatch/pkg/patch"
	"github.com/Manu343726/bodypatch/pkg/patch/edit"
	"github.com/Manu343726/bodypatch/pkg/patch/match"
)

var _ = Describe("PatchAll", func() {
	var (
		mockCtrl     *gomock.Controller
		mockProvider *MockBodyProvider
		mockInstall  *MockInstaller
		recorder     *logging.Recorder
		logger       *slog.Logger
		orchestrator *patch.Orchestrator

		target   il.MethodID
		original il.Stream
		patched  il.Stream
		table    patch.Table
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		mockProvider = NewMockBodyProvider(mockCtrl)
		mockInstall = NewMockInstaller(mockCtrl)

		recorder = logging.NewRecorder(slog.LevelDebug)
		logger = slog.New(recorder)
		orchestrator = patch.NewOrchestrator(logger)

		target = il.Method("Player", "get_Lives")
		original = il.NewBuilder().LdcI(3).Ret().MustBuild()
		patched = il.NewBuilder().LdcI(9).Ret().MustBuild()

		table = patch.Table{
			{
				Method: target,
				Routes: []patch.Route{
					{
						Name:    "more-lives",
						Feature: "extra lives",
						Rule:    match.NewRule(match.At(0, match.Ldc(3)), match.At(1, match.Op(instructions.OpKind_Ret))),
						Plan:    edit.NewPlan(edit.ReplaceOperand(0, instructions.IntOperand(9))),
					},
				},
			},
		}
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should install the patched body", func() {
		mockProvider.EXPECT().Body(target).Return(original, nil)
		mockInstall.EXPECT().Install(target, sameStream(patched)).Return(nil)

		report := PatchAll(mockProvider, mockInstall, orchestrator, table, logger)

		Expect(report.Installed).To(Equal([]il.MethodID{target}))
		Expect(report.Reverted).To(BeEmpty())
		Expect(report.Summary()).To(Equal(patch.Summary{Applied: 1}))
		Expect(recorder.AtLevel(slog.LevelWarn)).To(BeEmpty())
	})

	It("should not install anything if no route applied", func() {
		unexpected := il.NewBuilder().LdcI(5).Ret().MustBuild()
		mockProvider.EXPECT().Body(target).Return(unexpected, nil)

		report := PatchAll(mockProvider, mockInstall, orchestrator, table, logger)

		Expect(report.Installed).To(BeEmpty())
		Expect(report.Summary()).To(Equal(patch.Summary{NotMatched: 1}))
		Expect(recorder.AtLevel(slog.LevelWarn)).To(HaveLen(1))
	})

	It("should report every route of a missing method as not matched", func() {
		table[0].Routes = append(table[0].Routes, patch.Route{
			Name: "never-run",
			Rule: match.NewRule(match.At(0, match.Any())),
			Plan: edit.NewPlan(edit.RemoveRange(0, 1)),
		})
		mockProvider.EXPECT().Body(target).Return(il.Stream{}, ErrUnknownMethod)

		report := PatchAll(mockProvider, mockInstall, orchestrator, table, logger)

		Expect(report.Results).To(HaveLen(2))
		for _, result := range report.Results {
			Expect(result.Status).To(Equal(patch.Status_NotMatched))
			Expect(result.Cause()).To(Equal("PatternNotFound"))
			Expect(errors.Is(result.Err, ErrUnknownMethod)).To(BeTrue())
		}
		Expect(recorder.AtLevel(slog.LevelWarn)).To(HaveLen(2))
	})

	It("should reinstall the original body if the host rejects the patched one", func() {
		mockProvider.EXPECT().Body(target).Return(original, nil)
		gomock.InOrder(
			mockInstall.EXPECT().Install(target, sameStream(patched)).Return(errors.New("verifier error")),
			mockInstall.EXPECT().Install(target, sameStream(original)).Return(nil),
		)

		report := PatchAll(mockProvider, mockInstall, orchestrator, table, logger)

		Expect(report.Installed).To(BeEmpty())
		Expect(report.Reverted).To(Equal([]il.MethodID{target}))
		Expect(report.Results).To(HaveLen(1))
		Expect(report.Results[0].Status).To(Equal(patch.Status_Failed))
		Expect(report.Results[0].Cause()).To(Equal("HostInstallationFailure"))
		Expect(recorder.AtLevel(slog.LevelError)).To(HaveLen(1))
	})
})

var _ = Describe("PatchAll on a memory host", func() {
	It("should keep the original body when the patched one falls off its end", func() {
		target := il.Method("Door", "Open")
		original := il.NewBuilder().LdcI(1).Pop().Ret().MustBuild()
		h := NewMemoryHost().Define(target, original)

		table := patch.Table{{
			Method: target,
			Routes: []patch.Route{{
				Name: "drop-return",
				Rule: match.NewRule(match.At(0, match.Op(instructions.OpKind_Ret))),
				Plan: edit.NewPlan(edit.RemoveRange(0, 1)),
			}},
		}}

		report := PatchAll(h, h, patch.NewOrchestrator(nil), table, nil)

		Expect(report.Reverted).To(Equal([]il.MethodID{target}))
		current, err := h.Current(target)
		Expect(err).NotTo(HaveOccurred())
		Expect(current.Equal(original)).To(BeTrue())
	})
})

type streamMatcher struct {
	expected il.Stream
}

func sameStream(expected il.Stream) gomock.Matcher {
	return streamMatcher{expected: expected}
}

func (m streamMatcher) Matches(x any) bool {
	actual, ok := x.(il.Stream)
	return ok && actual.Equal(m.expected)
}

func (m streamMatcher) String() string {
	return "is the stream\n" + m.expected.String()
}
