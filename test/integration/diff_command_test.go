package integration_test

import (
	"os/exec"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
	"github.com/onsi/gomega/gexec"
)

var _ = Describe("Diff Command", func() {
	It("reports shared and unique occurrence counts", func() {
		command := exec.Command(pathToCLI, "diff", "0 9 * * *", "0 9 * * 1-5", "--count", "10")
		session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
		Expect(err).NotTo(HaveOccurred())

		Eventually(session).Should(gexec.Exit(0))
		Expect(session.Out).To(gbytes.Say("shared="))
	})
})
