package e2e_test

import (
	"os/exec"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
	"github.com/onsi/gomega/gexec"
)

var pathToCLI string

var _ = BeforeSuite(func() {
	var err error
	pathToCLI, err = gexec.Build("github.com/chronex/chronex/cmd/chronex")
	Expect(err).NotTo(HaveOccurred())
})

var _ = AfterSuite(func() {
	gexec.CleanupBuildArtifacts()
})

func TestE2E(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "End-to-end Suite")
}

var _ = Describe("Concrete schedule scenarios", func() {
	It("advances a */5 minute schedule to the next five-minute mark", func() {
		command := exec.Command(pathToCLI, "next", "*/5 * * * *",
			"--from", "2026-01-01T00:03:00Z", "--count", "1", "--json")
		session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
		Expect(err).NotTo(HaveOccurred())
		Eventually(session).Should(gexec.Exit(0))
		Expect(session.Out).To(gbytes.Say("2026-01-01T00:05:00Z"))
	})

	It("skips February for a day-31 schedule", func() {
		command := exec.Command(pathToCLI, "next", "0 0 31 * *",
			"--from", "2026-01-31T01:00:00Z", "--count", "1", "--json")
		session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
		Expect(err).NotTo(HaveOccurred())
		Eventually(session).Should(gexec.Exit(0))
		Expect(session.Out).To(gbytes.Say("2026-03-31T00:00:00Z"))
	})

	It("matches day-of-month OR day-of-week for 15th-or-Friday", func() {
		command := exec.Command(pathToCLI, "next", "0 0 15 * FRI",
			"--from", "2026-01-01T00:00:00Z", "--count", "5", "--json")
		session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
		Expect(err).NotTo(HaveOccurred())
		Eventually(session).Should(gexec.Exit(0))
		Expect(session.Out).To(gbytes.Say("2026-01-02T00:00:00Z"))
	})

	It("resolves MON#2 and MON#5 to the correct ordinal weekday", func() {
		command := exec.Command(pathToCLI, "next", "0 0 * * MON#2",
			"--from", "2026-03-01T00:00:00Z", "--count", "1", "--json")
		session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
		Expect(err).NotTo(HaveOccurred())
		Eventually(session).Should(gexec.Exit(0))
		Expect(session.Out).To(gbytes.Say("2026-03-09T00:00:00Z"))

		command = exec.Command(pathToCLI, "next", "0 0 * * MON#5",
			"--from", "2026-01-01T00:00:00Z", "--count", "1", "--json")
		session, err = gexec.Start(command, GinkgoWriter, GinkgoWriter)
		Expect(err).NotTo(HaveOccurred())
		Eventually(session).Should(gexec.Exit(0))
		Expect(session.Out).To(gbytes.Say("2026-03-30T00:00:00Z"))
	})

	It("resolves an America/New_York schedule across the spring-forward gap", func() {
		command := exec.Command(pathToCLI, "next", "TZ=America/New_York 30 2 * * *",
			"--from", "2026-03-07T12:00:00Z", "--count", "2", "--json")
		session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
		Expect(err).NotTo(HaveOccurred())
		Eventually(session).Should(gexec.Exit(0))
		Expect(session.Out).To(gbytes.Say(`"next_runs"`))
	})

	It("resolves an America/New_York schedule across the fall-back repeat", func() {
		command := exec.Command(pathToCLI, "next", "TZ=America/New_York 30 1 * * *",
			"--from", "2026-10-31T12:00:00Z", "--count", "2", "--json")
		session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
		Expect(err).NotTo(HaveOccurred())
		Eventually(session).Should(gexec.Exit(0))
		Expect(session.Out).To(gbytes.Say(`"next_runs"`))
	})

	It("samples a randomized interval schedule within its declared bounds", func() {
		command := exec.Command(pathToCLI, "next", "@every 1h-2h",
			"--from", "2026-01-01T00:00:00Z", "--count", "50", "--seed", "7", "--json")
		session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
		Expect(err).NotTo(HaveOccurred())
		Eventually(session).Should(gexec.Exit(0))
		Expect(session.Out).To(gbytes.Say(`"next_runs"`))
	})

	It("reports no further occurrences for an elapsed @once", func() {
		command := exec.Command(pathToCLI, "next", "@once 2026-06-01T09:00:00Z",
			"--from", "2026-06-01T09:00:00Z", "--count", "1", "--json")
		session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
		Expect(err).NotTo(HaveOccurred())
		Eventually(session).Should(gexec.Exit(0))
		Expect(session.Out).To(gbytes.Say(`"next_runs": \[\]`))
	})

	It("validates an expression with explicit structured diagnostics", func() {
		command := exec.Command(pathToCLI, "validate", "*/5 * * * *", "--json")
		session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
		Expect(err).NotTo(HaveOccurred())
		Eventually(session).Should(gexec.Exit(0))
		Expect(session.Out).To(gbytes.Say(`"is_valid": true`))
	})

	It("reports a parse error for a malformed expression", func() {
		command := exec.Command(pathToCLI, "validate", "not a valid expression", "--json")
		session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
		Expect(err).NotTo(HaveOccurred())
		Eventually(session).Should(gexec.Exit(1))
		Expect(session.Out).To(gbytes.Say(`"is_valid": false`))
	})
})
