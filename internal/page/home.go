package page

import "github.com/31Joojo/portfolio/internal/config"

// Fixed home page content. Everything here is static and trusted, which is
// the only reason the two UnsafeHTML blocks are acceptable.
const (
	homeBiography = "I'm currently doing a Master 1 in Data and Artificial Intelligence at EFREI Paris, " +
		"and I'm passionate about data mining and creating powerful visual insights. " +
		"The aim of this portfolio is to demonstrate my skills in data visualisation, by highlighting " +
		"projects where I analyse my own music listening data, and governmental data."

	homeAboutHTML = `<img src="/assets/profile.jpg" class="img-circle"/>
<p>Joris LARMAILLARD-NOIREN</p>
<p>Email : joris.larmaillard--noiren@efrei.net</p>
<p>Cursus : on Master degree Data &amp; AI</p>`

	homeButtonsHTML = `<style>
    .profile-button {
        background-color: #D4E6B5;
        width: 100%;
        border: 2px solid white;
        border-radius: .25cm;
        padding: 10px;
        margin: 10px auto;
    }
    .profile-button:hover {
        color: #D4E6B5;
        background-color: white;
        border: 2px solid black;
    }
</style>
<a href="https://www.linkedin.com/in/joris-larmaillard-noiren/">
    <button class="profile-button">Linkedin</button>
</a>
<br>
<a href="https://github.com/31Joojo">
    <button class="profile-button">GitHub</button>
</a>`
)

// renderHome builds the introductory page: a fixed six-instruction sequence,
// independent of everything but the page identity.
func renderHome(_ *config.Config) (Page, error) {
	return Page{
		Title{Text: "Welcome to my portfolio !"},
		Subheader{Text: "Introduction", Divider: "green"},
		Markdown{Body: homeBiography},
		Subheader{Text: "About me"},
		UnsafeHTML{Markup: homeAboutHTML},
		UnsafeHTML{Markup: homeButtonsHTML},
	}, nil
}
