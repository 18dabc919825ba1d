package integration_test

import (
	"os/exec"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
	"github.com/onsi/gomega/gexec"
)

var _ = Describe("Timeline Command", func() {
	It("renders a table with gap columns", func() {
		command := exec.Command(pathToCLI, "timeline", "* * * * *", "--count", "5")
		session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
		Expect(err).NotTo(HaveOccurred())

		Eventually(session).Should(gexec.Exit(0))
		Expect(session.Out).To(gbytes.Say("Timeline for"))
		Expect(session.Out).To(gbytes.Say("Gap"))
	})
})
