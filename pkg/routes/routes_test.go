package routes

import (
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Manu343726/bodypatch/pkg/host"
	"github.com/Manu343726/bodypatch/pkg/il"
	"github.com/Manu343726/bodypatch/pkg/il/instructions"
	"github.com/Manu343726/bodypatch/pkg/logging"
	"github.com/Manu343726/bodypatch/pkg/patch"
)

func resultOf(results []patch.Result, route string) patch.Result {
	for _, result := range results {
		if result.Route == route {
			return result
		}
	}

	Fail("no result for route " + route)
	return patch.Result{}
}

var _ = Describe("Table", func() {
	It("should be valid", func() {
		Expect(Table().Validate()).To(Succeed())
		Expect(Table().TotalRoutes()).To(Equal(7))
	})

	It("should match the checked-in snapshot of the host", func() {
		snapshot, err := host.LoadSnapshot("testdata/deepdelve-1.4.2.yaml")
		Expect(err).NotTo(HaveOccurred())

		sample := SampleSnapshot()
		Expect(snapshot.Host).To(Equal(sample.Host))
		Expect(snapshot.Version).To(Equal(sample.Version))
		Expect(snapshot.Methods).To(HaveLen(len(sample.Methods)))

		for i, method := range sample.Methods {
			Expect(snapshot.Methods[i].Method.Equal(method.Method.MethodID)).To(BeTrue())
			Expect(snapshot.Methods[i].Body.Equal(method.Body.Stream)).To(BeTrue(), "body of %v", method.Method.MethodID)
		}
	})
})

var _ = Describe("Patching the sample host", func() {
	var (
		recorder *logging.Recorder
		h        *host.MemoryHost
		report   host.PatchReport
	)

	BeforeEach(func() {
		recorder = logging.NewRecorder(logging.LevelTrace)
		logger := slog.New(recorder)

		var err error
		h, err = SampleSnapshot().MemoryHost()
		Expect(err).NotTo(HaveOccurred())

		report = host.PatchAll(h, h, patch.NewOrchestrator(logger), Table(), logger)
	})

	installed := func(method il.MethodID) il.Stream {
		body, ok := h.Installed(method)
		Expect(ok).To(BeTrue(), "%v was not installed", method)
		return body
	}

	It("should apply every current route and only warn about the legacy one", func() {
		Expect(report.Summary()).To(Equal(patch.Summary{Applied: 6, NotMatched: 1}))
		Expect(report.Reverted).To(BeEmpty())
		Expect(report.Installed).To(HaveLen(6))

		legacy := resultOf(report.Results, "legacy-boulder-cap")
		Expect(legacy.Status).To(Equal(patch.Status_NotMatched))
		Expect(legacy.Cause()).To(Equal("PatternNotFound"))

		warnings := recorder.AtLevel(slog.LevelWarn)
		Expect(warnings).To(HaveLen(1))
		Expect(warnings[0].Attr("route")).To(Equal("legacy-boulder-cap"))
		Expect(warnings[0].Attr("feature")).To(Equal("boulder cap"))
	})

	It("should raise the tile row limit", func() {
		original, _ := h.Body(GenerateColumn)
		body := installed(GenerateColumn)

		Expect(body.Len()).To(Equal(original.Len()))
		for i := 0; i < body.Len(); i++ {
			if i == 4 {
				Expect(body.At(i).Operand.Int()).To(Equal(int64(TileRows)))
				continue
			}
			Expect(body.At(i).Equal(original.At(i))).To(BeTrue(), "instruction %d changed", i)
		}
	})

	It("should raise the boulder cap", func() {
		body := installed(SpawnHazards)

		Expect(body.At(12).Op).To(Equal(instructions.OpKind_LdcI))
		Expect(body.At(12).Operand.Int()).To(Equal(int64(BoulderCapacity)))
		Expect(resultOf(report.Results, "boulder-cap").Anchor).To(Equal(1))
	})

	It("should send cave-in encounters to the end of the method", func() {
		body := installed(PickEncounter)
		labels, err := il.ResolveLabels(body)
		Expect(err).NotTo(HaveOccurred())

		Expect(body.Len()).To(Equal(17))
		caveIn, ok := labels.Resolve("L_cavein")
		Expect(ok).To(BeTrue())
		Expect(body.At(caveIn).Op).To(Equal(instructions.OpKind_Br))
		Expect(body.At(caveIn).Targets()).To(Equal([]instructions.LabelID{"L_none"}))

		for _, instr := range body.Instructions() {
			Expect(instr.Op).NotTo(Equal(instructions.OpKind_Callvirt))
		}
	})

	It("should raise the oxygen capacity without a dive suit only", func() {
		body := installed(MaxOxygen)

		Expect(body.At(3).Operand.Float()).To(Equal(OxygenTank))
		Expect(body.At(5).Operand.Float()).To(Equal(180.0))
	})

	It("should call the minimap hook from both paths", func() {
		body := installed(DrawMinimap)
		labels, err := il.ResolveLabels(body)
		Expect(err).NotTo(HaveOccurred())

		markers, _ := labels.Resolve("L_markers")
		Expect(markers).To(Equal(4))
		Expect(body.At(4).Operand.Symbol()).To(Equal(MinimapDrawHook))
		Expect(body.At(5).Operand.Symbol().Name).To(Equal("DrawMarkers"))
		Expect(body.At(5).Labels).To(BeEmpty())
	})

	It("should call the minimap hook when the markers are drawn first", func() {
		body := il.NewBuilder().
			Call(instructions.Method("Hud", "DrawMarkers")).
			Ret().
			MustBuild()

		final, results := patch.NewOrchestrator(nil).Patch(DrawMinimap, body, []patch.Route{MinimapHook()})

		Expect(results).To(HaveLen(1))
		Expect(results[0].Status).To(Equal(patch.Status_Applied))
		Expect(final.Len()).To(Equal(3))
		Expect(final.At(0).Operand.Symbol()).To(Equal(MinimapDrawHook))
		Expect(final.At(1).Operand.Symbol().Name).To(Equal("DrawMarkers"))
	})

	It("should make lanterns steady", func() {
		body := installed(LanternUpdate)

		Expect(body.Len()).To(Equal(10))
		Expect(body.At(2).Op).To(Equal(instructions.OpKind_LdcR))
		Expect(body.At(2).Operand.Float()).To(Equal(1.0))
		Expect(body.At(3).Op).To(Equal(instructions.OpKind_Mul))
	})

	It("should leave patched bodies alone", func() {
		patched, err := host.SnapshotOf(h, HostName, HostVersion)
		Expect(err).NotTo(HaveOccurred())
		again, err := patched.MemoryHost()
		Expect(err).NotTo(HaveOccurred())

		second := host.PatchAll(again, again, patch.NewOrchestrator(nil), Table(), nil)

		Expect(second.Summary()).To(Equal(patch.Summary{NotMatched: 7}))
		Expect(second.Installed).To(BeEmpty())
	})
})

var _ = Describe("Patching a legacy host", func() {
	legacySpawnHazards := func() il.Stream {
		return il.NewBuilder().
			Ldstr("HazardTarget").
			Call(instructions.Method("SpawnDirector", "FindSpawnPoint", "string")).
			Stloc(0).
			Ldloc(0).
			Brfalse("L_none").
			Ldstr("cc_Boulder").
			Ldloc(0).
			Call(instructions.Method("Hazard", "CountNear", "string", "Vector3")).
			LdcI(5).
			Bge("L_none").
			Ldstr("cc_Boulder").
			Ldloc(0).
			Call(instructions.Method("Hazard", "Spawn", "string", "Vector3")).
			Label("L_none").Ret().
			MustBuild()
	}

	It("should apply the legacy boulder cap instead of the current one", func() {
		recorder := logging.NewRecorder(slog.LevelWarn)
		target, _ := Table().Find(SpawnHazards)

		final, results := patch.NewOrchestrator(slog.New(recorder)).Patch(SpawnHazards, legacySpawnHazards(), target.Routes)

		Expect(resultOf(results, "boulder-cap").Status).To(Equal(patch.Status_NotMatched))
		Expect(resultOf(results, "legacy-boulder-cap").Status).To(Equal(patch.Status_Applied))
		Expect(final.At(8).Operand.Int()).To(Equal(int64(BoulderCapacity)))
		Expect(recorder.Entries()).To(HaveLen(1))
	})

	It("should refuse the current boulder cap when the checks between anchor and literal moved", func() {
		body := spawnHazardsBody()
		reordered := body.Instructions()
		// Depth check before the spawn point check: same anchor offsets, different shape
		reordered[4], reordered[6] = reordered[6], reordered[4]

		_, results := patch.NewOrchestrator(nil).Patch(SpawnHazards, il.NewStream(reordered...), []patch.Route{BoulderCap()})

		Expect(results[0].Status).To(Equal(patch.Status_NotMatched))
		Expect(results[0].Err.Error()).To(ContainSubstring("shape"))
	})
})

var _ = Describe("Interpositions", func() {
	var interposer *host.Interposer

	BeforeEach(func() {
		interposer = host.NewInterposer(nil)
		Expect(interposer.RegisterAll(Interpositions())).To(Succeed())
	})

	It("should clamp item stacks", func() {
		addItem := interposer.Wrap(AddItem, func(_ any, args []any) any { return args[1] })

		Expect(addItem(nil, []any{"rope", 5000})).To(Equal(MaxStack))
		Expect(addItem(nil, []any{"rope", 12})).To(Equal(12))
	})

	It("should boost the player speed", func() {
		speed := interposer.Wrap(Speed, func(any, []any) any { return 4.0 })

		Expect(speed(nil, nil)).To(Equal(4.0 * SpeedMultiplier))
	})
})
