package integration_test

import (
	"os/exec"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
	"github.com/onsi/gomega/gexec"
)

var _ = Describe("Stats Command", func() {
	It("reports min/max/mean gap over sampled occurrences", func() {
		command := exec.Command(pathToCLI, "stats", "* * * * *", "--count", "50")
		session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
		Expect(err).NotTo(HaveOccurred())

		Eventually(session).Should(gexec.Exit(0))
		Expect(session.Out).To(gbytes.Say("min gap"))
		Expect(session.Out).To(gbytes.Say("max gap"))
	})
})
