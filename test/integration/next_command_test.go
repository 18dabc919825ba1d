package integration_test

import (
	"os/exec"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
	"github.com/onsi/gomega/gexec"
)

var _ = Describe("Next Command", func() {
	It("prints the requested number of occurrences", func() {
		command := exec.Command(pathToCLI, "next", "@daily", "--count", "3")
		session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
		Expect(err).NotTo(HaveOccurred())

		Eventually(session).Should(gexec.Exit(0))
		Expect(session.Out).To(gbytes.Say("Next 3 run"))
		Expect(session.Out).To(gbytes.Say(`3\.`))
	})

	It("rejects a malformed expression", func() {
		command := exec.Command(pathToCLI, "next", "not a valid expression")
		session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
		Expect(err).NotTo(HaveOccurred())

		Eventually(session).Should(gexec.Exit(1))
	})
})
