package integration_test

import (
	"os/exec"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
	"github.com/onsi/gomega/gexec"
)

var _ = Describe("Validate Command", func() {
	It("reports a well-formed expression as valid", func() {
		command := exec.Command(pathToCLI, "validate", "*/15 * * * *")
		session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
		Expect(err).NotTo(HaveOccurred())

		Eventually(session).Should(gexec.Exit(0))
		Expect(session.Out).To(gbytes.Say("valid"))
	})

	It("reports an out-of-range minute with a non-zero exit", func() {
		command := exec.Command(pathToCLI, "validate", "99 * * * *")
		session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
		Expect(err).NotTo(HaveOccurred())

		Eventually(session).Should(gexec.Exit(1))
		Expect(session.Out).To(gbytes.Say("E002"))
	})

	It("emits JSON when --json is passed", func() {
		command := exec.Command(pathToCLI, "validate", "* * * * *", "--json")
		session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
		Expect(err).NotTo(HaveOccurred())

		Eventually(session).Should(gexec.Exit(0))
		Expect(session.Out).To(gbytes.Say(`"is_valid"`))
	})
})
